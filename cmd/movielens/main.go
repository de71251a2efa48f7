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
	"fmt"
	"strings"

	"github.com/gorse-io/movielens/cmd/version"
	"github.com/gorse-io/movielens/common/log"
	"github.com/gorse-io/movielens/config"
	"github.com/gorse-io/movielens/dataset"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "movielens",
		Short:         "Download and split MovieLens datasets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			log.SetLogger(cmd.Flags(), debug)
			if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
				log.CloseLogger()
			}
		},
	}
	log.AddFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log fatal errors")
	rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCmd.PersistentFlags().StringP("dataset", "d", "", "dataset name ("+strings.Join(dataset.FormatNames(), ", ")+")")
	rootCmd.PersistentFlags().String("url", "", "download URL of the dataset archive")
	rootCmd.PersistentFlags().String("path", "", "local path of the cached dataset archive")
	rootCmd.PersistentFlags().Bool("progress", false, "show download progress")
	rootCmd.AddCommand(newDownloadCommand(), newSplitCommand(), newInfoCommand(), newVersionCommand())
	return rootCmd
}

// loadConfig loads the configuration file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to load config %s", configPath)
	}
	if cmd.Flags().Changed("dataset") {
		cfg.Dataset.Name, _ = cmd.Flags().GetString("dataset")
	}
	if cmd.Flags().Changed("url") {
		cfg.Dataset.URL, _ = cmd.Flags().GetString("url")
	}
	if cmd.Flags().Changed("path") {
		cfg.Dataset.Path, _ = cmd.Flags().GetString("path")
	}
	if cmd.Flags().Changed("progress") {
		cfg.Dataset.Progress, _ = cmd.Flags().GetBool("progress")
	}
	if cmd.Flags().Lookup("seed") != nil && cmd.Flags().Changed("seed") {
		cfg.Split.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Lookup("test-size") != nil && cmd.Flags().Changed("test-size") {
		cfg.Split.TestSize, _ = cmd.Flags().GetFloat64("test-size")
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

func newDownloadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Download the dataset archive if it is not cached",
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
			if err = manager.EnsureLocal(cmd.Context()); err != nil {
				return errors.Trace(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), manager.Path())
			return err
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.BuildInfo())
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
