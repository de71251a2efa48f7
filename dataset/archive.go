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
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/gorse-io/movielens/common/log"
	"github.com/gorse-io/movielens/config"
	"github.com/gorse-io/movielens/storage/blob"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/gorse-io/movielens/dataset")

// ArchiveDataset is a dataset shipped as a zip archive and cached on local disk.
type ArchiveDataset interface {
	EnsureLocal(ctx context.Context) error
	Open(ctx context.Context) (*zip.Reader, error)
	ReadMember(ctx context.Context, name string) ([]byte, error)
	Close() error
}

var _ ArchiveDataset = (*Archive)(nil)

// Archive downloads a zip archive once and keeps it open for reading members.
type Archive struct {
	url      string
	path     string
	storage  config.StorageConfig
	store    blob.Store
	progress bool
	reader   *zip.ReadCloser
}

type ArchiveOption func(*Archive)

// WithStorage sets credentials used for s3://, gs:// and azblob:// URLs.
func WithStorage(cfg config.StorageConfig) ArchiveOption {
	return func(a *Archive) {
		a.storage = cfg
	}
}

// WithStore fetches the archive from a fixed store instead of resolving the URL.
func WithStore(store blob.Store) ArchiveOption {
	return func(a *Archive) {
		a.store = store
	}
}

// WithProgress shows a progress bar on stderr while downloading.
func WithProgress(progress bool) ArchiveOption {
	return func(a *Archive) {
		a.progress = progress
	}
}

func NewArchive(url, path string, opts ...ArchiveOption) *Archive {
	a := &Archive{url: url, path: path}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Archive) URL() string {
	return a.url
}

func (a *Archive) Path() string {
	return a.path
}

// EnsureLocal downloads the archive if no file exists at the cache path. The body is written
// to a temporary file and renamed into place, so an interrupted download leaves no cache.
func (a *Archive) EnsureLocal(ctx context.Context) error {
	if info, err := os.Stat(a.path); err == nil {
		if !info.Mode().IsRegular() {
			return errors.NotValidf("cache path %s, expect a regular file", a.path)
		}
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Trace(err)
	}
	ctx, span := tracer.Start(ctx, "EnsureLocal")
	defer span.End()
	span.SetAttributes(attribute.String("url", log.RedactURL(a.url)), attribute.String("path", a.path))
	log.Logger().Info("download dataset",
		zap.String("source", log.RedactURL(a.url)),
		zap.String("destination", a.path))

	// Open source
	var (
		body io.ReadCloser
		size int64
		err  error
	)
	if a.store != nil {
		body, size, err = a.store.Open(ctx, a.url)
	} else {
		body, size, err = blob.Open(ctx, a.storage, a.url)
	}
	if err != nil {
		span.RecordError(err)
		return errors.Trace(err)
	}
	defer body.Close()

	// Create file
	if err = os.MkdirAll(filepath.Dir(a.path), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	output, err := renameio.NewPendingFile(a.path, renameio.WithPermissions(0644))
	if err != nil {
		return errors.Trace(err)
	}
	defer output.Cleanup()

	// Save file
	var src io.Reader = body
	if a.progress {
		bar := progressbar.DefaultBytes(size, "downloading "+filepath.Base(a.path))
		pbReader := progressbar.NewReader(body, bar)
		src = &pbReader
	}
	n, err := io.Copy(output, src)
	if err != nil {
		log.Logger().Error("failed to download", zap.Error(err), zap.String("source", log.RedactURL(a.url)))
		span.RecordError(err)
		return errors.Annotatef(err, "failed to download %s", log.RedactURL(a.url))
	}
	if err = output.CloseAtomicallyReplace(); err != nil {
		return errors.Trace(err)
	}
	span.SetAttributes(attribute.Int64("bytes", n))
	log.Logger().Info("dataset downloaded", zap.String("path", a.path), zap.Int64("bytes", n))
	return nil
}

// Open ensures the archive is cached and opens it. The handle is reused until Close.
func (a *Archive) Open(ctx context.Context) (*zip.Reader, error) {
	if a.reader != nil {
		return &a.reader.Reader, nil
	}
	if err := a.EnsureLocal(ctx); err != nil {
		return nil, errors.Trace(err)
	}
	reader, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to open archive %s", a.path)
	}
	a.reader = reader
	return &a.reader.Reader, nil
}

// ReadMember reads the whole content of a file inside the archive.
func (a *Archive) ReadMember(ctx context.Context, name string) ([]byte, error) {
	r, err := a.Open(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	f, err := r.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.NotFoundf("member %s in %s", name, a.path)
		}
		return nil, errors.Trace(err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read member %s in %s", name, a.path)
	}
	return data, nil
}

func (a *Archive) Close() error {
	if a.reader == nil {
		return nil
	}
	err := a.reader.Close()
	a.reader = nil
	return errors.Trace(err)
}
