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
	"fmt"
	"time"

	"github.com/gorse-io/movielens/common/util"
	"github.com/juju/errors"
)

const (
	ml100kRatingSeparator = "\t"
	ml100kSeparator       = "|"
	ml100kDateLayout      = "02-Jan-2006"
	ml100kFolds           = 5
)

// ml100kGenres are the genre flag columns of u.item, in order.
var ml100kGenres = []string{
	"unknown", "Action", "Adventure", "Animation", "Children's", "Comedy", "Crime",
	"Documentary", "Drama", "Fantasy", "Film-Noir", "Horror", "Musical", "Mystery",
	"Romance", "Sci-Fi", "Thriller", "War", "Western",
}

// ml100k is the MovieLens 100K dataset: 100,000 ratings from 943 users on 1,682 movies.
type ml100k struct{}

func (ml100k) Name() string {
	return "ml-100k"
}

func (ml100k) DownloadURL() string {
	return "http://files.grouplens.org/datasets/movielens/ml-100k.zip"
}

func (ml100k) RatingMember() string {
	return "ml-100k/u.data"
}

func (ml100k) UserMember() string {
	return "ml-100k/u.user"
}

func (ml100k) MovieMember() string {
	return "ml-100k/u.item"
}

// ParseRatings parses tab separated user id, item id, rating and timestamp.
func (ml100k) ParseRatings(name string, data []byte) (*Ratings, error) {
	return parseRatings(name, data, ml100kRatingSeparator)
}

// ParseUsers parses user id | age | gender | occupation | zip code.
func (ml100k) ParseUsers(name string, data []byte) ([]User, error) {
	var users []User
	err := readTable(name, data, ml100kSeparator, 5, func(fields []string) error {
		userId, err := util.ParseInt[int32](fields[0])
		if err != nil {
			return errors.Annotate(err, "invalid user id")
		}
		age, err := util.ParseInt[int](fields[1])
		if err != nil {
			return errors.Annotate(err, "invalid age")
		}
		users = append(users, User{
			UserId:     userId,
			Gender:     fields[2],
			Age:        age,
			Occupation: fields[3],
			ZipCode:    fields[4],
		})
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return users, nil
}

// ParseMovies parses movie id | movie title | release date | video release date |
// IMDb URL | followed by one 0/1 flag per genre.
func (ml100k) ParseMovies(name string, data []byte) ([]Movie, error) {
	data, err := decodeLatin1(data)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var movies []Movie
	err = readTable(name, data, ml100kSeparator, 5+len(ml100kGenres), func(fields []string) error {
		movieId, err := util.ParseInt[int32](fields[0])
		if err != nil {
			return errors.Annotate(err, "invalid movie id")
		}
		movie := Movie{MovieId: movieId, Title: fields[1]}
		if fields[2] != "" {
			movie.ReleaseDate, err = time.Parse(ml100kDateLayout, fields[2])
			if err != nil {
				return errors.Annotate(err, "invalid release date")
			}
		}
		for i, flag := range fields[5:] {
			switch flag {
			case "1":
				movie.Genres = append(movie.Genres, ml100kGenres[i])
			case "0":
			default:
				return errors.NotValidf("genre flag %q", flag)
			}
		}
		movies = append(movies, movie)
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return movies, nil
}

// PredefinedSplit returns u{fold}.base and u{fold}.test for fold in [1, 5].
func (ml100k) PredefinedSplit(fold int) (string, string, error) {
	if fold < 1 || fold > ml100kFolds {
		return "", "", errors.NotValidf("fold %d, expect 1 to %d", fold, ml100kFolds)
	}
	return fmt.Sprintf("ml-100k/u%d.base", fold), fmt.Sprintf("ml-100k/u%d.test", fold), nil
}
