// Copyright 2025 gorse Project Authors
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPOSIX(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "test"), []byte("hello world"), 0644)
	assert.NoError(t, err)
	client := NewPOSIX(dir)

	// relative name
	r, size, err := client.Open(context.Background(), "test")
	assert.NoError(t, err)
	assert.Equal(t, int64(11), size)
	content, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
	assert.NoError(t, r.Close())

	// absolute name
	r, _, err = NewPOSIX("").Open(context.Background(), filepath.Join(dir, "test"))
	assert.NoError(t, err)
	assert.NoError(t, r.Close())

	// not found
	_, _, err = client.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
