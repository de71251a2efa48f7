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

package main

import (
	"io"
	"sort"
	"strconv"

	"github.com/gorse-io/movielens/dataset"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show users, movies and genres of the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return errors.Trace(err)
			}
			manager, err := dataset.NewManagerFromConfig(cfg)
			if err != nil {
				return errors.Trace(err)
			}
			defer manager.Close()

			ratings, err := manager.LoadAllRatings(cmd.Context())
			if err != nil {
				return errors.Trace(err)
			}
			users, err := manager.LoadUsers(cmd.Context())
			if err != nil {
				return errors.Trace(err)
			}
			movies, err := manager.LoadMovies(cmd.Context())
			if err != nil {
				return errors.Trace(err)
			}
			return printInfo(cmd.OutOrStdout(), manager.Format().Name(), ratings, users, movies)
		},
	}
}

func printInfo(w io.Writer, name string, ratings *dataset.Ratings, users []dataset.User, movies []dataset.Movie) error {
	table := tablewriter.NewWriter(w)
	table.Header("dataset", "ratings", "users", "movies")
	if err := table.Append([]string{
		name,
		strconv.Itoa(ratings.Count()),
		strconv.Itoa(len(users)),
		strconv.Itoa(len(movies)),
	}); err != nil {
		return errors.Trace(err)
	}
	if err := table.Render(); err != nil {
		return errors.Trace(err)
	}

	// count movies per genre
	genres := lo.CountValues(lo.FlatMap(movies, func(movie dataset.Movie, _ int) []string {
		return movie.Genres
	}))
	names := lo.Keys(genres)
	sort.Slice(names, func(i, j int) bool {
		if genres[names[i]] != genres[names[j]] {
			return genres[names[i]] > genres[names[j]]
		}
		return names[i] < names[j]
	})
	table = tablewriter.NewWriter(w)
	table.Header("genre", "movies")
	for _, genre := range names {
		if err := table.Append([]string{genre, strconv.Itoa(genres[genre])}); err != nil {
			return errors.Trace(err)
		}
	}
	return table.Render()
}
