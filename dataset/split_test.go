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
	"math"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func newTestRatings(n int) *Ratings {
	ratings := NewRatings(n)
	for i := 0; i < n; i++ {
		ratings.Append(Rating{
			UserId:    int32(i / 10),
			MovieId:   int32(i),
			Rating:    float32(i%5 + 1),
			Timestamp: time.Unix(int64(978300760+i), 0).UTC(),
		})
	}
	return ratings
}

func TestTrainTestSplit(t *testing.T) {
	ratings := newTestRatings(1000)
	train, test, err := TrainTestSplit(ratings, 0.1, 114514)
	assert.NoError(t, err)
	assert.Equal(t, 900, train.Count())
	assert.Equal(t, 100, test.Count())
	// disjoint and complete
	trainSet := mapset.NewSet(train.MovieIds...)
	testSet := mapset.NewSet(test.MovieIds...)
	assert.Equal(t, 900, trainSet.Cardinality())
	assert.Equal(t, 100, testSet.Cardinality())
	assert.True(t, trainSet.Intersect(testSet).IsEmpty())
	assert.True(t, trainSet.Union(testSet).Equal(mapset.NewSet(ratings.MovieIds...)))
	// rows are kept intact
	for i := 0; i < test.Count(); i++ {
		rating := test.Get(i)
		assert.Equal(t, ratings.Get(int(rating.MovieId)), rating)
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	ratings := newTestRatings(500)
	train1, test1, err := TrainTestSplit(ratings, 0.2, 114514)
	assert.NoError(t, err)
	train2, test2, err := TrainTestSplit(ratings, 0.2, 114514)
	assert.NoError(t, err)
	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
	_, test3, err := TrainTestSplit(ratings, 0.2, 42)
	assert.NoError(t, err)
	assert.NotEqual(t, test1.MovieIds, test3.MovieIds)
}

func TestTrainTestSplitSize(t *testing.T) {
	for _, n := range []int{1, 2, 7, 10, 99, 1001} {
		for _, testSize := range []float64{0.01, 0.1, 0.25, 0.5, 0.9} {
			ratings := newTestRatings(n)
			expectedTest := int(math.Ceil(testSize * float64(n)))
			train, test, err := TrainTestSplit(ratings, testSize, 0)
			if expectedTest >= n {
				assert.True(t, errors.Is(err, errors.NotValid), "n=%d test_size=%v", n, testSize)
				continue
			}
			assert.NoError(t, err)
			assert.Equal(t, expectedTest, test.Count(), "n=%d test_size=%v", n, testSize)
			assert.Equal(t, n-expectedTest, train.Count(), "n=%d test_size=%v", n, testSize)
			assert.InDelta(t, testSize*float64(n), float64(test.Count()), 1)
		}
	}
}

func TestTrainTestSplitInvalid(t *testing.T) {
	ratings := newTestRatings(10)
	for _, testSize := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, _, err := TrainTestSplit(ratings, testSize, 0)
		assert.True(t, errors.Is(err, errors.NotValid), "test_size=%v", testSize)
	}
	_, _, err := TrainTestSplit(NewRatings(0), 0.1, 0)
	assert.True(t, errors.Is(err, errors.NotValid))
}
