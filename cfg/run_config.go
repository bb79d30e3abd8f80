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

// RunConfig is the immutable description of one node's share of a run.
type RunConfig struct {
	OutputDir     string
	FilesPerNode  int64
	FileSizeBytes int64
	Workers       int64
	NodeID        int64
	NodeCount     int64

	// MaxWriteBytesPerSec bounds the write bandwidth of the node. Zero
	// disables throttling.
	MaxWriteBytesPerSec float64
}

// RunConfig returns the run parameters described by c.
func (c *Config) RunConfig() RunConfig {
	return RunConfig{
		OutputDir:           string(c.OutputDir),
		FilesPerNode:        c.Generation.NumFiles,
		FileSizeBytes:       c.Generation.FileSizeKb * 1024,
		Workers:             c.Generation.Threads,
		NodeID:              c.Node.Id,
		NodeCount:           c.Node.Count,
		MaxWriteBytesPerSec: c.Generation.MaxWriteMbPerSec * (1 << 20),
	}
}

// TotalFiles is the number of files produced by all nodes together.
func (rc RunConfig) TotalFiles() int64 {
	return rc.FilesPerNode * rc.NodeCount
}

// Validate returns a *ConfigError if rc cannot be run.
func (rc RunConfig) Validate() error {
	switch {
	case rc.OutputDir == "":
		return &ConfigError{Field: "output-dir", Reason: "must not be empty"}
	case rc.FilesPerNode < 0:
		return &ConfigError{Field: "num-files", Reason: "must be non-negative"}
	case rc.FileSizeBytes < 0:
		return &ConfigError{Field: "size-kb", Reason: "must be non-negative"}
	case rc.Workers < 1:
		return &ConfigError{Field: "threads", Reason: "must be at least 1"}
	case rc.NodeCount < 1:
		return &ConfigError{Field: "node-count", Reason: "must be at least 1"}
	case rc.NodeID < 0 || rc.NodeID >= rc.NodeCount:
		return &ConfigError{Field: "node-id", Reason: "must be in [0, node-count)"}
	case rc.MaxWriteBytesPerSec < 0:
		return &ConfigError{Field: "max-write-mb-per-sec", Reason: "must be non-negative"}
	}
	return nil
}
