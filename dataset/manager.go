// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"context"

	"github.com/gorse-io/movielens/common/log"
	"github.com/gorse-io/movielens/config"
	"github.com/juju/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Manager loads a MovieLens dataset from its cached archive.
type Manager struct {
	*Archive
	format   Format
	seed     int64
	testSize float64
}

// NewManager creates a manager for format. An empty url uses the format's download URL.
func NewManager(format Format, url, path string, seed int64, testSize float64, opts ...ArchiveOption) *Manager {
	if url == "" {
		url = format.DownloadURL()
	}
	return &Manager{
		Archive:  NewArchive(url, path, opts...),
		format:   format,
		seed:     seed,
		testSize: testSize,
	}
}

// NewManagerFromConfig creates a manager from configuration.
func NewManagerFromConfig(cfg *config.Config) (*Manager, error) {
	format, err := LookupFormat(cfg.Dataset.Name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewManager(format, cfg.Dataset.URL, cfg.Dataset.ArchivePath(), cfg.Split.Seed, cfg.Split.TestSize,
		WithStorage(cfg.Storage),
		WithProgress(cfg.Dataset.Progress)), nil
}

func (m *Manager) Format() Format {
	return m.format
}

// LoadRatings splits ratings with the configured seed and test size.
func (m *Manager) LoadRatings(ctx context.Context) (*Ratings, *Ratings, error) {
	return m.LoadRatingsSplit(ctx, m.seed, m.testSize)
}

// LoadRatingsSplit splits ratings into a training set and a test set. See TrainTestSplit.
func (m *Manager) LoadRatingsSplit(ctx context.Context, seed int64, testSize float64) (*Ratings, *Ratings, error) {
	ratings, err := m.LoadAllRatings(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	train, test, err := TrainTestSplit(ratings, testSize, seed)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	log.Logger().Debug("split ratings",
		zap.String("dataset", m.format.Name()),
		zap.Int64("seed", seed),
		zap.Float64("test_size", testSize),
		zap.Int("n_train", train.Count()),
		zap.Int("n_test", test.Count()))
	return train, test, nil
}

// LoadAllRatings parses all ratings in the archive.
func (m *Manager) LoadAllRatings(ctx context.Context) (*Ratings, error) {
	return m.loadRatings(ctx, m.format.RatingMember())
}

// LoadRatingPredefinedSplit loads a train/test fold shipped in the archive.
func (m *Manager) LoadRatingPredefinedSplit(ctx context.Context, fold int) (*Ratings, *Ratings, error) {
	trainMember, testMember, err := m.format.PredefinedSplit(fold)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	train, err := m.loadRatings(ctx, trainMember)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	test, err := m.loadRatings(ctx, testMember)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return train, test, nil
}

func (m *Manager) loadRatings(ctx context.Context, member string) (*Ratings, error) {
	ctx, span := tracer.Start(ctx, "LoadRatings")
	defer span.End()
	span.SetAttributes(attribute.String("member", member))
	data, err := m.ReadMember(ctx, member)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ratings, err := m.format.ParseRatings(member, data)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Trace(err)
	}
	span.SetAttributes(attribute.Int("ratings", ratings.Count()))
	return ratings, nil
}

func (m *Manager) LoadUsers(ctx context.Context) ([]User, error) {
	member := m.format.UserMember()
	data, err := m.ReadMember(ctx, member)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return m.format.ParseUsers(member, data)
}

func (m *Manager) LoadMovies(ctx context.Context) ([]Movie, error) {
	member := m.format.MovieMember()
	data, err := m.ReadMember(ctx, member)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return m.format.ParseMovies(member, data)
}
