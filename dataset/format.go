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
	"bufio"
	"bytes"
	"sort"
	"strings"
	"time"

	"github.com/gorse-io/movielens/common/util"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"golang.org/x/text/encoding/charmap"
)

// Format describes the layout of a MovieLens archive: where members live and how to parse
// them.
type Format interface {
	Name() string
	DownloadURL() string
	RatingMember() string
	UserMember() string
	MovieMember() string
	ParseRatings(name string, data []byte) (*Ratings, error)
	ParseUsers(name string, data []byte) ([]User, error)
	ParseMovies(name string, data []byte) ([]Movie, error)
	// PredefinedSplit returns the train and test members of a fold shipped in the archive.
	PredefinedSplit(fold int) (string, string, error)
}

var (
	ML100K Format = ml100k{}
	ML1M   Format = ml1m{}
)

var formats = map[string]Format{
	ML100K.Name(): ML100K,
	ML1M.Name():   ML1M,
}

// LookupFormat finds a built-in format by dataset name.
func LookupFormat(name string) (Format, error) {
	if format, exist := formats[name]; exist {
		return format, nil
	}
	return nil, errors.NotFoundf("dataset %s", name)
}

// FormatNames lists names of built-in formats.
func FormatNames() []string {
	names := lo.Keys(formats)
	sort.Strings(names)
	return names
}

// readTable parses delimited lines without header. Every non-empty line must have exactly
// numFields fields.
func readTable(name string, data []byte, sep string, numFields int, handler func([]string) error) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, sep)
		if len(fields) != numFields {
			return errors.NotValidf("line %d of %s: expect %d fields but got %d", lineNumber, name, numFields, len(fields))
		}
		if err := handler(fields); err != nil {
			return errors.Annotatef(err, "line %d of %s", lineNumber, name)
		}
	}
	return errors.Trace(scanner.Err())
}

// parseRatings parses rows of user_id, movie_id, rating and timestamp in Unix seconds.
func parseRatings(name string, data []byte, sep string) (*Ratings, error) {
	ratings := NewRatings(bytes.Count(data, []byte{'\n'}) + 1)
	err := readTable(name, data, sep, 4, func(fields []string) error {
		rating, err := parseRating(fields)
		if err != nil {
			return err
		}
		ratings.Append(rating)
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return ratings, nil
}

func parseRating(fields []string) (Rating, error) {
	userId, err := util.ParseInt[int32](fields[0])
	if err != nil {
		return Rating{}, errors.Annotatef(err, "invalid %s", ColumnUserId)
	}
	movieId, err := util.ParseInt[int32](fields[1])
	if err != nil {
		return Rating{}, errors.Annotatef(err, "invalid %s", ColumnMovieId)
	}
	value, err := util.ParseFloat[float32](fields[2])
	if err != nil {
		return Rating{}, errors.Annotatef(err, "invalid %s", ColumnRating)
	}
	timestamp, err := util.ParseInt[int64](fields[3])
	if err != nil {
		return Rating{}, errors.Annotatef(err, "invalid %s", ColumnTimestamp)
	}
	return Rating{
		UserId:    userId,
		MovieId:   movieId,
		Rating:    value,
		Timestamp: time.Unix(timestamp, 0).UTC(),
	}, nil
}

// decodeLatin1 converts ISO-8859-1 text to UTF-8.
func decodeLatin1(data []byte) ([]byte, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return decoded, nil
}
