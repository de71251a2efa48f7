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

	"github.com/gorse-io/movielens/base"
	"github.com/juju/errors"
)

// TrainTestSplit splits ratings randomly into a training set and a test set.
//
//	nTest  = ceil(testSize * N)
//	nTrain = N - nTest
//
// testSize must be in (0, 1) and the training set must not be empty. Rows of both sets
// follow the order of a permutation generated from seed, so the same seed always yields the
// same split.
func TrainTestSplit(ratings *Ratings, testSize float64, seed int64) (*Ratings, *Ratings, error) {
	if math.IsNaN(testSize) || testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NotValidf("test size %v, expect a value in (0, 1)", testSize)
	}
	n := ratings.Count()
	numTest := int(math.Ceil(testSize * float64(n)))
	if n-numTest <= 0 {
		return nil, nil, errors.NotValidf("test size %v with %d ratings, the training set would be empty", testSize, n)
	}
	rng := base.NewRandomGenerator(seed)
	testIndex, trainIndex := rng.SplitIndex(n, numTest)
	return ratings.Subset(trainIndex), ratings.Subset(testIndex), nil
}
