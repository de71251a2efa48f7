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

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

const (
	DefaultDataset  = "ml-1m"
	DefaultSeed     = 114514
	DefaultTestSize = 0.1
)

// Config is the configuration for dataset loading.
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Split   SplitConfig   `mapstructure:"split"`
	Storage StorageConfig `mapstructure:"storage"`
}

type DatasetConfig struct {
	// Name of the built-in dataset.
	Name string `mapstructure:"name" validate:"oneof=ml-100k ml-1m"`
	// URL overrides the download URL of the built-in dataset.
	URL string `mapstructure:"url"`
	// CacheDir is the directory of the cached archive. The archive is stored as .<name>.zip.
	CacheDir string `mapstructure:"cache_dir"`
	// Path overrides the full path of the cached archive.
	Path string `mapstructure:"path"`
	// Progress shows a progress bar while downloading.
	Progress bool `mapstructure:"progress"`
}

// ArchivePath returns the local path of the cached archive.
func (c *DatasetConfig) ArchivePath() string {
	if c.Path != "" {
		return c.Path
	}
	return filepath.Join(c.CacheDir, "."+c.Name+".zip")
}

type SplitConfig struct {
	Seed     int64   `mapstructure:"seed"`
	TestSize float64 `mapstructure:"test_size" validate:"gt=0,lt=1"`
}

type StorageConfig struct {
	S3        S3Config        `mapstructure:"s3"`
	GCS       GCSConfig       `mapstructure:"gcs"`
	AzureBlob AzureBlobConfig `mapstructure:"azure_blob"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type GCSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	Endpoint        string `mapstructure:"endpoint"`
}

type AzureBlobConfig struct {
	AccountName      string `mapstructure:"account_name"`
	AccountKey       string `mapstructure:"account_key"`
	Endpoint         string `mapstructure:"endpoint"`
	ConnectionString string `mapstructure:"connection_string"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Name:     DefaultDataset,
			CacheDir: homeDir(),
		},
		Split: SplitConfig{
			Seed:     DefaultSeed,
			TestSize: DefaultTestSize,
		},
		Storage: StorageConfig{
			S3: S3Config{
				UseSSL: true,
			},
		},
	}
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return dir
}

func (config *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(config)
}

func setDefault() {
	defaultConfig := GetDefaultConfig()
	// [dataset]
	viper.SetDefault("dataset.name", defaultConfig.Dataset.Name)
	viper.SetDefault("dataset.url", defaultConfig.Dataset.URL)
	viper.SetDefault("dataset.cache_dir", defaultConfig.Dataset.CacheDir)
	viper.SetDefault("dataset.path", defaultConfig.Dataset.Path)
	viper.SetDefault("dataset.progress", defaultConfig.Dataset.Progress)
	// [split]
	viper.SetDefault("split.seed", defaultConfig.Split.Seed)
	viper.SetDefault("split.test_size", defaultConfig.Split.TestSize)
	// [storage.s3]
	viper.SetDefault("storage.s3.endpoint", defaultConfig.Storage.S3.Endpoint)
	viper.SetDefault("storage.s3.access_key_id", defaultConfig.Storage.S3.AccessKeyID)
	viper.SetDefault("storage.s3.secret_access_key", defaultConfig.Storage.S3.SecretAccessKey)
	viper.SetDefault("storage.s3.use_ssl", defaultConfig.Storage.S3.UseSSL)
	// [storage.gcs]
	viper.SetDefault("storage.gcs.credentials_file", defaultConfig.Storage.GCS.CredentialsFile)
	viper.SetDefault("storage.gcs.endpoint", defaultConfig.Storage.GCS.Endpoint)
	// [storage.azure_blob]
	viper.SetDefault("storage.azure_blob.account_name", defaultConfig.Storage.AzureBlob.AccountName)
	viper.SetDefault("storage.azure_blob.account_key", defaultConfig.Storage.AzureBlob.AccountKey)
	viper.SetDefault("storage.azure_blob.endpoint", defaultConfig.Storage.AzureBlob.Endpoint)
	viper.SetDefault("storage.azure_blob.connection_string", defaultConfig.Storage.AzureBlob.ConnectionString)
}

type configBinding struct {
	key string
	env string
}

func bindEnv() {
	bindings := []configBinding{
		{"dataset.name", "MOVIELENS_DATASET"},
		{"dataset.url", "MOVIELENS_URL"},
		{"dataset.cache_dir", "MOVIELENS_CACHE_DIR"},
		{"dataset.path", "MOVIELENS_PATH"},
		{"dataset.progress", "MOVIELENS_PROGRESS"},
		{"split.seed", "MOVIELENS_SEED"},
		{"split.test_size", "MOVIELENS_TEST_SIZE"},
		{"storage.s3.endpoint", "S3_ENDPOINT"},
		{"storage.s3.access_key_id", "S3_ACCESS_KEY_ID"},
		{"storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY"},
		{"storage.gcs.credentials_file", "GCS_CREDENTIALS_FILE"},
		{"storage.gcs.endpoint", "GCS_EMULATOR_ENDPOINT"},
		{"storage.azure_blob.account_name", "AZURE_STORAGE_ACCOUNT"},
		{"storage.azure_blob.account_key", "AZURE_STORAGE_KEY"},
		{"storage.azure_blob.connection_string", "AZURE_STORAGE_CONNECTION_STRING"},
	}
	for _, binding := range bindings {
		if err := viper.BindEnv(binding.key, binding.env); err != nil {
			panic(err)
		}
	}
}

// LoadConfig loads configuration from a TOML or YAML file. An empty path yields the defaults
// overridden by environment variables.
func LoadConfig(path string) (*Config, error) {
	viper.Reset()
	setDefault()
	bindEnv()
	if path != "" {
		viper.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
			viper.SetConfigType("toml")
		}
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	}
	var conf Config
	if err := viper.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}
