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

package blob

import (
	"context"
	"io"
	"net/http"

	"github.com/gorse-io/movielens/common/log"
	"github.com/juju/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type HTTP struct {
	client *http.Client
}

// NewHTTP creates a store that downloads objects by URL. A nil client is replaced by a
// traced client without timeout.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &HTTP{client: client}
}

// Open sends a GET request to the URL. Responses other than 2xx are errors.
func (h *HTTP) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, name, nil)
	if err != nil {
		return nil, 0, errors.Trace(err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, 0, errors.Annotatef(err, "failed to download %s", log.RedactURL(name))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, 0, errors.Errorf("failed to download %s: %s", log.RedactURL(name), resp.Status)
	}
	return resp.Body, resp.ContentLength, nil
}
