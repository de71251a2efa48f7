// Copyright 2020 gorse Project Authors
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

package base

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_SplitIndex(t *testing.T) {
	rng := NewRandomGenerator(0)
	head, tail := rng.SplitIndex(100, 10)
	assert.Len(t, head, 10)
	assert.Len(t, tail, 90)
	all := mapset.NewSet(head...)
	all.Append(tail...)
	assert.Equal(t, 100, all.Cardinality())
	assert.True(t, mapset.NewSet(head...).Intersect(mapset.NewSet(tail...)).IsEmpty())
}

func TestRandomGenerator_SplitIndexDeterministic(t *testing.T) {
	head1, tail1 := NewRandomGenerator(114514).SplitIndex(50, 5)
	head2, tail2 := NewRandomGenerator(114514).SplitIndex(50, 5)
	assert.Equal(t, head1, head2)
	assert.Equal(t, tail1, tail2)
}

func TestRandomGenerator_SplitIndexBounds(t *testing.T) {
	rng := NewRandomGenerator(0)
	head, tail := rng.SplitIndex(3, 5)
	assert.Len(t, head, 3)
	assert.Empty(t, tail)
	head, tail = rng.SplitIndex(3, -1)
	assert.Empty(t, head)
	assert.Len(t, tail, 3)
}
