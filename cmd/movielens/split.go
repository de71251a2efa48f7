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
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorse-io/movielens/common/log"
	"github.com/gorse-io/movielens/config"
	"github.com/gorse-io/movielens/dataset"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSplitCommand() *cobra.Command {
	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Split ratings into a training set and a test set",
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

			var train, test *dataset.Ratings
			if fold, _ := cmd.Flags().GetInt("fold"); fold > 0 {
				train, test, err = manager.LoadRatingPredefinedSplit(cmd.Context(), fold)
			} else {
				train, test, err = manager.LoadRatings(cmd.Context())
			}
			if err != nil {
				return errors.Trace(err)
			}
			if err = printSplit(cmd.OutOrStdout(), train, test); err != nil {
				return errors.Trace(err)
			}

			if output, _ := cmd.Flags().GetString("output"); output != "" {
				if err = os.MkdirAll(output, os.ModePerm); err != nil {
					return errors.Trace(err)
				}
				if err = writeRatings(filepath.Join(output, "train.csv"), train); err != nil {
					return errors.Trace(err)
				}
				if err = writeRatings(filepath.Join(output, "test.csv"), test); err != nil {
					return errors.Trace(err)
				}
				log.Logger().Info("save split", zap.String("output", output))
			}
			return nil
		},
	}
	splitCmd.Flags().Int64("seed", config.DefaultSeed, "random seed of the split")
	splitCmd.Flags().Float64("test-size", config.DefaultTestSize, "fraction of ratings in the test set")
	splitCmd.Flags().Int("fold", 0, "use a predefined fold shipped in the archive (ml-100k only)")
	splitCmd.Flags().StringP("output", "o", "", "directory to save train.csv and test.csv")
	return splitCmd
}

func printSplit(w io.Writer, train, test *dataset.Ratings) error {
	table := tablewriter.NewWriter(w)
	table.Header("split", "ratings", "users", "movies", "earliest", "latest")
	for _, split := range []struct {
		name    string
		ratings *dataset.Ratings
	}{
		{"train", train},
		{"test", test},
	} {
		earliest, latest := split.ratings.TimeRange()
		if err := table.Append([]string{
			split.name,
			strconv.Itoa(split.ratings.Count()),
			strconv.Itoa(split.ratings.CountUsers()),
			strconv.Itoa(split.ratings.CountMovies()),
			earliest.Format(time.DateTime),
			latest.Format(time.DateTime),
		}); err != nil {
			return errors.Trace(err)
		}
	}
	return table.Render()
}

func writeRatings(path string, ratings *dataset.Ratings) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	if err = ratings.DataFrame().WriteCSV(file); err != nil {
		return errors.Annotatef(err, "failed to write %s", path)
	}
	return errors.Trace(file.Close())
}
