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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		OutputDir: "/tmp/out",
		Generation: GenerationConfig{
			NumFiles:   5,
			FileSizeKb: 1,
			Threads:    2,
		},
		Node: NodeConfig{Id: 0, Count: 1},
		Logging: LoggingConfig{
			Format:    TextLogFormat,
			Severity:  LogSeverity(INFO),
			LogRotate: LogRotateLoggingConfig{MaxFileSizeMb: 1},
		},
	}
}

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(c *Config)
		wantErr       bool
		expectedField string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "zero files is valid",
			mutate: func(c *Config) { c.Generation.NumFiles = 0 },
		},
		{
			name:          "node id equal to node count",
			mutate:        func(c *Config) { c.Node.Id, c.Node.Count = 2, 2 },
			wantErr:       true,
			expectedField: "node-id",
		},
		{
			name:          "negative node id",
			mutate:        func(c *Config) { c.Node.Id = -1 },
			wantErr:       true,
			expectedField: "node-id",
		},
		{
			name:          "zero node count",
			mutate:        func(c *Config) { c.Node.Count = 0 },
			wantErr:       true,
			expectedField: "node-count",
		},
		{
			name:          "zero threads",
			mutate:        func(c *Config) { c.Generation.Threads = 0 },
			wantErr:       true,
			expectedField: "threads",
		},
		{
			name:          "negative file size",
			mutate:        func(c *Config) { c.Generation.FileSizeKb = -1 },
			wantErr:       true,
			expectedField: "size-kb",
		},
		{
			name:          "missing output dir",
			mutate:        func(c *Config) { c.OutputDir = "" },
			wantErr:       true,
			expectedField: "output-dir",
		},
		{
			name:          "unknown log format",
			mutate:        func(c *Config) { c.Logging.Format = "xml" },
			wantErr:       true,
			expectedField: "log-format",
		},
		{
			name:          "invalid log rotate size",
			mutate:        func(c *Config) { c.Logging.LogRotate.MaxFileSizeMb = 0 },
			wantErr:       true,
			expectedField: "max-file-size-mb",
		},
		{
			name:          "port out of range",
			mutate:        func(c *Config) { c.Metrics.PrometheusPort = 70000 },
			wantErr:       true,
			expectedField: "prometheus-port",
		},
		{
			name:          "file size overflows bytes",
			mutate:        func(c *Config) { c.Generation.FileSizeKb = math.MaxInt64/1024 + 1 },
			wantErr:       true,
			expectedField: "size-kb",
		},
		{
			name:   "largest file size",
			mutate: func(c *Config) { c.Generation.FileSizeKb = math.MaxInt64 / 1024 },
		},
		{
			name:          "infinite write bandwidth",
			mutate:        func(c *Config) { c.Generation.MaxWriteMbPerSec = math.Inf(1) },
			wantErr:       true,
			expectedField: "max-write-mb-per-sec",
		},
		{
			name:          "negative write bandwidth",
			mutate:        func(c *Config) { c.Generation.MaxWriteMbPerSec = -1 },
			wantErr:       true,
			expectedField: "max-write-mb-per-sec",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(&c)

			err := ValidateConfig(&c)

			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var configErr *ConfigError
			if assert.ErrorAs(t, err, &configErr) {
				assert.Equal(t, tc.expectedField, configErr.Field)
			}
		})
	}
}

func TestRunConfig(t *testing.T) {
	c := validConfig()
	c.Generation.MaxWriteMbPerSec = 2
	c.Node = NodeConfig{Id: 1, Count: 3}

	rc := c.RunConfig()

	assert.Equal(t, RunConfig{
		OutputDir:           "/tmp/out",
		FilesPerNode:        5,
		FileSizeBytes:       1024,
		Workers:             2,
		NodeID:              1,
		NodeCount:           3,
		MaxWriteBytesPerSec: 2 << 20,
	}, rc)
	assert.Equal(t, int64(15), rc.TotalFiles())
}
