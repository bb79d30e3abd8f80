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

package status

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/clock"
	"github.com/googlecloudplatform/dummygen/internal/util"
)

// Aggregator publishes the progress of one node into the shared document.
// It is safe for concurrent use, but publishes are serialized.
type Aggregator struct {
	store    Store
	clock    clock.Clock
	rc       cfg.RunConfig
	metadata NodeMetadata

	mu sync.Mutex
	// Baseline for the throughput of the next publish. GUARDED_BY(mu)
	lastUpdate  time.Time
	lastFiles   int64
	hasBaseline bool
}

// NewAggregator returns an Aggregator publishing the progress of node
// rc.NodeID, described by metadata, through store.
func NewAggregator(store Store, clk clock.Clock, rc cfg.RunConfig, metadata NodeMetadata) *Aggregator {
	return &Aggregator{
		store:    store,
		clock:    clk,
		rc:       rc,
		metadata: metadata,
	}
}

// MergeAndPublish reads the shared document, replaces this node's entry with
// one reporting filesCreated, recomputes the aggregate and writes the
// document back. Entries of other nodes are kept as read.
//
// On failure a *StatusIOError is returned and the throughput baseline is left
// alone, so the next successful publish covers the whole interval.
func (a *Aggregator) MergeAndPublish(ctx context.Context, filesCreated int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cs, err := a.store.Load(ctx)
	if err != nil {
		return &StatusIOError{Op: "read", Err: err}
	}
	if cs.Nodes == nil {
		cs.Nodes = make(map[string]NodeProgress)
	}

	md, err := json.Marshal(a.metadata)
	if err != nil {
		return &StatusIOError{Op: "encode", Err: err}
	}

	now := a.clock.Now()
	cs.Nodes[NodeKey(a.rc.NodeID)] = NodeProgress{
		FilesCreated:    filesCreated,
		PercentComplete: percent(filesCreated, a.rc.FilesPerNode),
		LastUpdate:      NewTimestamp(now),
		ThroughputMBps:  a.throughput(filesCreated, now),
		NodeMetadata:    md,
	}
	cs.Timestamp = NewTimestamp(now)
	cs.TotalFiles = a.rc.TotalFiles()
	cs.FileSizeKB = float64(a.rc.FileSizeBytes) / util.KiB
	cs.AggregateStats = Aggregate(cs.Nodes, cs.TotalFiles)

	if err := a.store.Save(ctx, cs); err != nil {
		return &StatusIOError{Op: "write", Err: err}
	}

	a.lastUpdate = now
	a.lastFiles = filesCreated
	a.hasBaseline = true
	return nil
}

// Snapshot returns the shared document as currently stored.
func (a *Aggregator) Snapshot(ctx context.Context) (*ClusterStatus, error) {
	cs, err := a.store.Load(ctx)
	if err != nil {
		return nil, &StatusIOError{Op: "read", Err: err}
	}
	return cs, nil
}

// throughput is the write rate in MiB/s since the last successful publish.
// LOCKS_REQUIRED(a.mu)
func (a *Aggregator) throughput(filesCreated int64, now time.Time) *float64 {
	if !a.hasBaseline {
		return nil
	}
	elapsed := now.Sub(a.lastUpdate).Seconds()
	if elapsed <= 0 {
		return nil
	}
	bytes := (filesCreated - a.lastFiles) * a.rc.FileSizeBytes
	mbps := util.BytesToMiB(bytes) / elapsed
	return &mbps
}
