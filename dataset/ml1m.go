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
	"strings"

	"github.com/gorse-io/movielens/common/util"
	"github.com/juju/errors"
)

const ml1mSeparator = "::"

// ml1mOccupations maps occupation codes in users.dat to names.
var ml1mOccupations = []string{
	"other",
	"academic/educator",
	"artist",
	"clerical/admin",
	"college/grad student",
	"customer service",
	"doctor/health care",
	"executive/managerial",
	"farmer",
	"homemaker",
	"K-12 student",
	"lawyer",
	"programmer",
	"retired",
	"sales/marketing",
	"scientist",
	"self-employed",
	"technician/engineer",
	"tradesman/craftsman",
	"unemployed",
	"writer",
}

// ml1m is the MovieLens 1M dataset: 1,000,209 ratings from 6,040 users on 3,706 movies.
type ml1m struct{}

func (ml1m) Name() string {
	return "ml-1m"
}

func (ml1m) DownloadURL() string {
	return "http://files.grouplens.org/datasets/movielens/ml-1m.zip"
}

func (ml1m) RatingMember() string {
	return "ml-1m/ratings.dat"
}

func (ml1m) UserMember() string {
	return "ml-1m/users.dat"
}

func (ml1m) MovieMember() string {
	return "ml-1m/movies.dat"
}

// ParseRatings parses UserID::MovieID::Rating::Timestamp.
func (ml1m) ParseRatings(name string, data []byte) (*Ratings, error) {
	return parseRatings(name, data, ml1mSeparator)
}

// ParseUsers parses UserID::Gender::Age::Occupation::Zip-code.
func (ml1m) ParseUsers(name string, data []byte) ([]User, error) {
	var users []User
	err := readTable(name, data, ml1mSeparator, 5, func(fields []string) error {
		userId, err := util.ParseInt[int32](fields[0])
		if err != nil {
			return errors.Annotate(err, "invalid user id")
		}
		age, err := util.ParseInt[int](fields[2])
		if err != nil {
			return errors.Annotate(err, "invalid age")
		}
		occupation, err := util.ParseInt[int](fields[3])
		if err != nil {
			return errors.Annotate(err, "invalid occupation")
		}
		if occupation < 0 || occupation >= len(ml1mOccupations) {
			return errors.NotValidf("occupation %d", occupation)
		}
		users = append(users, User{
			UserId:     userId,
			Gender:     fields[1],
			Age:        age,
			Occupation: ml1mOccupations[occupation],
			ZipCode:    fields[4],
		})
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return users, nil
}

// ParseMovies parses MovieID::Title::Genres. Genres are separated by '|'.
func (ml1m) ParseMovies(name string, data []byte) ([]Movie, error) {
	data, err := decodeLatin1(data)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var movies []Movie
	err = readTable(name, data, ml1mSeparator, 3, func(fields []string) error {
		movieId, err := util.ParseInt[int32](fields[0])
		if err != nil {
			return errors.Annotate(err, "invalid movie id")
		}
		movie := Movie{MovieId: movieId, Title: fields[1]}
		if fields[2] != "" {
			movie.Genres = strings.Split(fields[2], "|")
		}
		movies = append(movies, movie)
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return movies, nil
}

func (ml1m) PredefinedSplit(int) (string, string, error) {
	return "", "", errors.NotSupportedf("predefined split of ml-1m")
}
