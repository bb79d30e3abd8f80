// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cfg

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	OutputDir ResolvedPath `yaml:"output-dir"`

	Debug DebugConfig `yaml:"debug"`

	Generation GenerationConfig `yaml:"generation"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Node NodeConfig `yaml:"node"`
}

type DebugConfig struct {
	LogMutex bool `yaml:"log-mutex"`
}

type GenerationConfig struct {
	FileSizeKb int64 `yaml:"file-size-kb"`

	MaxWriteMbPerSec float64 `yaml:"max-write-mb-per-sec"`

	NumFiles int64 `yaml:"num-files"`

	Threads int64 `yaml:"threads"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int64 `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int64 `yaml:"max-file-size-mb"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format string `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type MetricsConfig struct {
	PrometheusPort int64 `yaml:"prometheus-port"`
}

type NodeConfig struct {
	Count int64 `yaml:"count"`

	Id int64 `yaml:"id"`
}

type flagBinding struct {
	configKey string
	flagName  string
}

// BindFlags declares every flag on flagSet and binds it to its config key in
// v, so that explicitly set flags take precedence over the config file.
func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	var err error

	flagSet.BoolP("debug_mutex", "", false, "Print debug messages when a mutex is held too long.")

	flagSet.Int64P("size-kb", "s", 10240, "Size of each file in KB.")

	flagSet.Float64P("max-write-mb-per-sec", "", 0, "Upper bound on the write bandwidth of this node in MiB/s. 0 means unlimited.")

	flagSet.Int64P("num-files", "n", 100, "Number of files to generate per node.")

	flagSet.Int64P("threads", "t", 0, "Number of worker threads to use. 0 means the number of CPUs.")

	flagSet.Int64P("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. 0 value means all backup files are retained.")

	flagSet.BoolP("log-rotate-compress", "", true, "Controls whether the rotated log files should be compressed using gzip.")

	flagSet.Int64P("log-rotate-max-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated.")

	flagSet.StringP("log-file", "", "", "The file for storing logs. When not provided, logs are printed to stdout.")

	flagSet.StringP("log-format", "", "text", "The format of the log file: 'text' or 'json'.")

	flagSet.StringP("log-severity", "", "info", "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")

	flagSet.Int64P("prometheus-port", "", 0, "Expose Prometheus metrics endpoint on this port. 0 disables the endpoint.")

	flagSet.Int64P("node-count", "", 1, "Total number of nodes in a distributed run.")

	flagSet.Int64P("node-id", "", 0, "Node identifier (0-based) for distributed runs.")

	bindings := []flagBinding{
		{"debug.log-mutex", "debug_mutex"},
		{"generation.file-size-kb", "size-kb"},
		{"generation.max-write-mb-per-sec", "max-write-mb-per-sec"},
		{"generation.num-files", "num-files"},
		{"generation.threads", "threads"},
		{"logging.log-rotate.backup-file-count", "log-rotate-backup-file-count"},
		{"logging.log-rotate.compress", "log-rotate-compress"},
		{"logging.log-rotate.max-file-size-mb", "log-rotate-max-file-size-mb"},
		{"logging.file-path", "log-file"},
		{"logging.format", "log-format"},
		{"logging.severity", "log-severity"},
		{"metrics.prometheus-port", "prometheus-port"},
		{"node.count", "node-count"},
		{"node.id", "node-id"},
	}
	for _, b := range bindings {
		err = v.BindPFlag(b.configKey, flagSet.Lookup(b.flagName))
		if err != nil {
			return err
		}
	}

	return nil
}
