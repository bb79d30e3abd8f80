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

// Package status maintains the cluster status document shared by all nodes
// of a run through the output directory.
//
// The document has no owner. Every node reads it, replaces its own entry and
// writes the whole document back. There is no cross-process lock, so two
// nodes publishing at the same instant can lose one of the two updates; the
// next publish of that node repairs it.
package status

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ClusterStatus is the shared status document.
type ClusterStatus struct {
	Nodes          map[string]NodeProgress `json:"nodes"`
	Timestamp      Timestamp               `json:"timestamp"`
	TotalFiles     int64                   `json:"total_files"`
	FileSizeKB     float64                 `json:"file_size_kb"`
	AggregateStats AggregateStats          `json:"aggregate_stats"`
}

// NodeProgress is the entry a node publishes about itself. Only the owning
// node writes it.
type NodeProgress struct {
	FilesCreated    int64     `json:"files_created"`
	PercentComplete float64   `json:"percent_complete"`
	LastUpdate      Timestamp `json:"last_update"`
	// Nil on the first update of a run.
	ThroughputMBps *float64 `json:"throughput_mb_s"`
	// Kept opaque so that entries of other nodes survive a rewrite verbatim.
	NodeMetadata json.RawMessage `json:"node_metadata,omitempty"`
}

type AggregateStats struct {
	TotalThroughputMBps float64 `json:"total_throughput_mb_s"`
	ActiveNodes         int     `json:"active_nodes"`
	TotalFilesCreated   int64   `json:"total_files_created"`
	PercentComplete     float64 `json:"percent_complete"`
}

// NodeMetadata holds the static facts a node reports about itself. The
// optional fields are only set when the host could be probed for them.
type NodeMetadata struct {
	RunID       string  `json:"run_id"`
	Hostname    string  `json:"hostname"`
	OS          string  `json:"os"`
	Arch        string  `json:"arch"`
	CPUCount    int     `json:"cpu_count"`
	WorkerCount int64   `json:"worker_count"`
	TargetFiles int64   `json:"target_files"`
	FileSizeKB  float64 `json:"file_size_kb"`

	TotalMemoryBytes   *uint64 `json:"total_memory_bytes,omitempty"`
	AvailableDiskBytes *uint64 `json:"available_disk_bytes,omitempty"`
}

// StatusIOError reports a failure to read or write the shared document. It
// never affects file generation.
type StatusIOError struct {
	Op  string
	Err error
}

func (e *StatusIOError) Error() string {
	return fmt.Sprintf("status %s: %v", e.Op, e.Err)
}

func (e *StatusIOError) Unwrap() error {
	return e.Err
}

// NewClusterStatus returns an empty document with zero nodes.
func NewClusterStatus() *ClusterStatus {
	return &ClusterStatus{Nodes: make(map[string]NodeProgress)}
}

// NodeKey is the key of a node's entry in ClusterStatus.Nodes.
func NodeKey(nodeID int64) string {
	return strconv.FormatInt(nodeID, 10)
}

// Aggregate sums up the given entries against the run-wide target.
func Aggregate(nodes map[string]NodeProgress, totalFiles int64) AggregateStats {
	var stats AggregateStats
	for _, n := range nodes {
		stats.ActiveNodes++
		stats.TotalFilesCreated += n.FilesCreated
		if n.ThroughputMBps != nil {
			stats.TotalThroughputMBps += *n.ThroughputMBps
		}
	}
	stats.PercentComplete = percent(stats.TotalFilesCreated, totalFiles)
	return stats
}

// percent reports done as a share of target. Nothing to do counts as done.
func percent(done, target int64) float64 {
	if target <= 0 {
		return 100
	}
	return float64(done) / float64(target) * 100
}
