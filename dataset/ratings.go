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
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"
)

// Column names of the ratings table.
const (
	ColumnUserId    = "user_id"
	ColumnMovieId   = "movie_id"
	ColumnRating    = "rating"
	ColumnTimestamp = "timestamp"
)

// Rating is a single user-movie interaction.
type Rating struct {
	UserId    int32
	MovieId   int32
	Rating    float32
	Timestamp time.Time
}

// Ratings stores interactions by column. All columns have the same length.
type Ratings struct {
	UserIds    []int32
	MovieIds   []int32
	Values     []float32
	Timestamps []time.Time
}

func NewRatings(capacity int) *Ratings {
	return &Ratings{
		UserIds:    make([]int32, 0, capacity),
		MovieIds:   make([]int32, 0, capacity),
		Values:     make([]float32, 0, capacity),
		Timestamps: make([]time.Time, 0, capacity),
	}
}

func (r *Ratings) Count() int {
	return len(r.UserIds)
}

func (r *Ratings) Append(rating Rating) {
	r.UserIds = append(r.UserIds, rating.UserId)
	r.MovieIds = append(r.MovieIds, rating.MovieId)
	r.Values = append(r.Values, rating.Rating)
	r.Timestamps = append(r.Timestamps, rating.Timestamp)
}

func (r *Ratings) Get(i int) Rating {
	return Rating{
		UserId:    r.UserIds[i],
		MovieId:   r.MovieIds[i],
		Rating:    r.Values[i],
		Timestamp: r.Timestamps[i],
	}
}

// Subset copies the rows at indices, in the order of indices.
func (r *Ratings) Subset(indices []int) *Ratings {
	subset := NewRatings(len(indices))
	for _, i := range indices {
		subset.Append(r.Get(i))
	}
	return subset
}

func (r *Ratings) CountUsers() int {
	return mapset.NewThreadUnsafeSet(r.UserIds...).Cardinality()
}

func (r *Ratings) CountMovies() int {
	return mapset.NewThreadUnsafeSet(r.MovieIds...).Cardinality()
}

// TimeRange returns the earliest and latest timestamps. Both are zero for empty ratings.
func (r *Ratings) TimeRange() (time.Time, time.Time) {
	if len(r.Timestamps) == 0 {
		return time.Time{}, time.Time{}
	}
	earliest := lo.MinBy(r.Timestamps, func(a, b time.Time) bool { return a.Before(b) })
	latest := lo.MaxBy(r.Timestamps, func(a, b time.Time) bool { return a.After(b) })
	return earliest, latest
}

// DataFrame converts ratings to a dataframe with columns user_id, movie_id, rating and
// timestamp. Timestamps are formatted as RFC 3339 strings.
func (r *Ratings) DataFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New(lo.Map(r.UserIds, func(v int32, _ int) int { return int(v) }), series.Int, ColumnUserId),
		series.New(lo.Map(r.MovieIds, func(v int32, _ int) int { return int(v) }), series.Int, ColumnMovieId),
		series.New(lo.Map(r.Values, func(v float32, _ int) float64 { return float64(v) }), series.Float, ColumnRating),
		series.New(lo.Map(r.Timestamps, func(v time.Time, _ int) string { return v.Format(time.RFC3339) }), series.String, ColumnTimestamp),
	)
}
