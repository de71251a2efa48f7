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
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/movielens/config"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/atomic"
)

const numTestRatings = 1000

type ManagerTestSuite struct {
	suite.Suite
	counter *atomic.Int32
	url     string
	manager *Manager
}

func (suite *ManagerTestSuite) SetupTest() {
	var builder strings.Builder
	for i := 0; i < numTestRatings; i++ {
		_, _ = fmt.Fprintf(&builder, "%d::%d::%d::%d\n", i/20+1, i+1, i%5+1, 978300760+i)
	}
	content := newZip(suite.T(), map[string]string{
		"ml-1m/ratings.dat": builder.String(),
		"ml-1m/users.dat":   "1::F::1::10::48067\n2::M::56::16::70072\n",
		"ml-1m/movies.dat":  "1::Toy Story (1995)::Animation|Children's|Comedy\n",
	})
	server, counter := newArchiveServer(suite.T(), content)
	suite.counter = counter
	suite.url = server.URL + "/archive.zip"
	suite.manager = NewManager(ML1M, suite.url, filepath.Join(suite.T().TempDir(), ".ml-1m.zip"),
		config.DefaultSeed, config.DefaultTestSize)
}

func (suite *ManagerTestSuite) TearDownTest() {
	suite.NoError(suite.manager.Close())
}

func (suite *ManagerTestSuite) TestLoadRatings() {
	train, test, err := suite.manager.LoadRatings(context.Background())
	suite.NoError(err)
	suite.Equal(900, train.Count())
	suite.Equal(100, test.Count())
	// partition without overlap
	trainKeys := mapset.NewSet(train.MovieIds...)
	testKeys := mapset.NewSet(test.MovieIds...)
	suite.True(trainKeys.Intersect(testKeys).IsEmpty())
	suite.Equal(numTestRatings, trainKeys.Union(testKeys).Cardinality())
	suite.Equal(int32(1), suite.counter.Load())

	// deterministic across calls
	train2, test2, err := suite.manager.LoadRatings(context.Background())
	suite.NoError(err)
	suite.Equal(train, train2)
	suite.Equal(test, test2)
	suite.Equal(int32(1), suite.counter.Load())
}

func (suite *ManagerTestSuite) TestLoadRatingsSplit() {
	all, err := suite.manager.LoadAllRatings(context.Background())
	suite.NoError(err)
	suite.Equal(numTestRatings, all.Count())
	suite.Equal(Rating{UserId: 1, MovieId: 1, Rating: 1, Timestamp: all.Timestamps[0]}, all.Get(0))

	train, test, err := suite.manager.LoadRatingsSplit(context.Background(), 1, 0.25)
	suite.NoError(err)
	suite.Equal(750, train.Count())
	suite.Equal(250, test.Count())
	expected, expectedTest, err := TrainTestSplit(all, 0.25, 1)
	suite.NoError(err)
	suite.Equal(expected, train)
	suite.Equal(expectedTest, test)

	_, _, err = suite.manager.LoadRatingsSplit(context.Background(), 1, 1)
	suite.True(errors.Is(err, errors.NotValid))
}

func (suite *ManagerTestSuite) TestLoadUsersAndMovies() {
	users, err := suite.manager.LoadUsers(context.Background())
	suite.NoError(err)
	suite.Len(users, 2)
	suite.Equal("K-12 student", users[0].Occupation)
	movies, err := suite.manager.LoadMovies(context.Background())
	suite.NoError(err)
	suite.Len(movies, 1)
	suite.Equal("Toy Story (1995)", movies[0].Title)
}

func (suite *ManagerTestSuite) TestPredefinedSplit() {
	_, _, err := suite.manager.LoadRatingPredefinedSplit(context.Background(), 1)
	suite.True(errors.Is(err, errors.NotSupported))
}

func (suite *ManagerTestSuite) TestMissingMember() {
	manager := NewManager(ML100K, suite.url, filepath.Join(suite.T().TempDir(), ".ml-100k.zip"), 0, 0.1)
	defer manager.Close()
	_, _, err := manager.LoadRatings(context.Background())
	suite.True(errors.Is(err, errors.NotFound))
}

func TestManager_ML100KPredefinedSplit(t *testing.T) {
	content := newZip(t, map[string]string{
		"ml-100k/u.data":  "196\t242\t3\t881250949\n186\t302\t3\t891717742\n22\t377\t1\t878887116\n",
		"ml-100k/u2.base": "196\t242\t3\t881250949\n186\t302\t3\t891717742\n",
		"ml-100k/u2.test": "22\t377\t1\t878887116\n",
	})
	server, _ := newArchiveServer(t, content)
	manager := NewManager(ML100K, server.URL+"/archive.zip", filepath.Join(t.TempDir(), ".ml-100k.zip"), 0, 0.1)
	defer manager.Close()
	train, test, err := manager.LoadRatingPredefinedSplit(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, []int32{242, 302}, train.MovieIds)
	assert.Equal(t, []int32{377}, test.MovieIds)
	_, _, err = manager.LoadRatingPredefinedSplit(context.Background(), 1)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestNewManagerFromConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Dataset.Name = "ml-100k"
	cfg.Dataset.CacheDir = t.TempDir()
	manager, err := NewManagerFromConfig(cfg)
	assert.NoError(t, err)
	assert.Equal(t, ML100K, manager.Format())
	assert.Equal(t, "http://files.grouplens.org/datasets/movielens/ml-100k.zip", manager.URL())
	assert.Equal(t, filepath.Join(cfg.Dataset.CacheDir, ".ml-100k.zip"), manager.Path())

	cfg.Dataset.URL = "s3://datasets/ml-100k.zip"
	manager, err = NewManagerFromConfig(cfg)
	assert.NoError(t, err)
	assert.Equal(t, "s3://datasets/ml-100k.zip", manager.URL())

	cfg.Dataset.Name = "ml-25m"
	_, err = NewManagerFromConfig(cfg)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestManager(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}
