// Copyright 2024 gorse Project Authors
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

package blob

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/gorse-io/movielens/common/log"
	"github.com/gorse-io/movielens/config"
	"github.com/juju/errors"
)

const (
	HTTPScheme      = "http"
	HTTPSScheme     = "https"
	FileScheme      = "file"
	S3Scheme        = "s3"
	GCSScheme       = "gs"
	AzureBlobScheme = "azblob"
)

// Store opens objects for reading. The returned size is -1 if the store does not know it.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}

// Resolve creates the store serving rawURL and returns the object name inside that store.
//
//	http://host/path, https://host/path  HTTP GET of the full URL
//	file:///path, /path                  local file
//	s3://bucket/key                      S3 compatible object storage
//	gs://bucket/key                      Google Cloud Storage
//	azblob://container/key               Azure Blob Storage
func Resolve(ctx context.Context, cfg config.StorageConfig, rawURL string) (Store, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", errors.Annotatef(err, "failed to parse %s", log.RedactURL(rawURL))
	}
	switch strings.ToLower(u.Scheme) {
	case HTTPScheme, HTTPSScheme:
		return NewHTTP(nil), rawURL, nil
	case FileScheme:
		return NewPOSIX(""), u.Path, nil
	case "":
		return NewPOSIX(""), rawURL, nil
	case S3Scheme:
		store, err := NewS3(cfg.S3, u.Host)
		if err != nil {
			return nil, "", errors.Trace(err)
		}
		return store, objectName(u), nil
	case GCSScheme:
		store, err := NewGCS(ctx, cfg.GCS, u.Host)
		if err != nil {
			return nil, "", errors.Trace(err)
		}
		return store, objectName(u), nil
	case AzureBlobScheme:
		store, err := NewAzureBlob(cfg.AzureBlob, u.Host)
		if err != nil {
			return nil, "", errors.Trace(err)
		}
		return store, objectName(u), nil
	default:
		return nil, "", errors.NotSupportedf("scheme %q of %s", u.Scheme, log.RedactURL(rawURL))
	}
}

// Open resolves rawURL and opens the object behind it.
func Open(ctx context.Context, cfg config.StorageConfig, rawURL string) (io.ReadCloser, int64, error) {
	store, name, err := Resolve(ctx, cfg, rawURL)
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	return store.Open(ctx, name)
}

func objectName(u *url.URL) string {
	return strings.TrimPrefix(u.Path, "/")
}
