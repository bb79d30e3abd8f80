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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var startTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// flakyStore wraps a Store and fails the next call of the chosen kind.
type flakyStore struct {
	Store
	failLoad bool
	failSave bool
}

func (s *flakyStore) Load(ctx context.Context) (*ClusterStatus, error) {
	if s.failLoad {
		s.failLoad = false
		return nil, errors.New("load failed")
	}
	return s.Store.Load(ctx)
}

func (s *flakyStore) Save(ctx context.Context, cs *ClusterStatus) error {
	if s.failSave {
		s.failSave = false
		return errors.New("save failed")
	}
	return s.Store.Save(ctx, cs)
}

type AggregatorTest struct {
	suite.Suite
	ctx   context.Context
	dir   string
	store *flakyStore
	clock *clock.SimulatedClock
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTest))
}

func (t *AggregatorTest) SetupTest() {
	t.ctx = context.Background()
	t.dir = t.T().TempDir()
	t.store = &flakyStore{Store: NewFileStore(t.dir)}
	t.clock = clock.NewSimulatedClock(startTime)
}

func (t *AggregatorTest) runConfig(nodeID, nodeCount, files int64) cfg.RunConfig {
	return cfg.RunConfig{
		OutputDir:     t.dir,
		FilesPerNode:  files,
		FileSizeBytes: 1 << 20,
		Workers:       2,
		NodeID:        nodeID,
		NodeCount:     nodeCount,
	}
}

func (t *AggregatorTest) aggregator(nodeID, nodeCount, files int64) *Aggregator {
	md := NodeMetadata{Hostname: "host", WorkerCount: 2}
	return NewAggregator(t.store, t.clock, t.runConfig(nodeID, nodeCount, files), md)
}

func (t *AggregatorTest) TestFirstPublishCreatesDocument() {
	a := t.aggregator(0, 1, 10)

	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 4))

	cs, err := a.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	require.Contains(t.T(), cs.Nodes, "0")
	n := cs.Nodes["0"]
	assert.EqualValues(t.T(), 4, n.FilesCreated)
	assert.InDelta(t.T(), 40.0, n.PercentComplete, 1e-9)
	assert.Nil(t.T(), n.ThroughputMBps)
	assert.True(t.T(), startTime.Equal(n.LastUpdate.Time))
	assert.EqualValues(t.T(), 10, cs.TotalFiles)
	assert.InDelta(t.T(), 1024.0, cs.FileSizeKB, 1e-9)
	assert.Equal(t.T(), 1, cs.AggregateStats.ActiveNodes)
	assert.EqualValues(t.T(), 4, cs.AggregateStats.TotalFilesCreated)
	assert.InDelta(t.T(), 40.0, cs.AggregateStats.PercentComplete, 1e-9)
	assert.Zero(t.T(), cs.AggregateStats.TotalThroughputMBps)
}

func (t *AggregatorTest) TestThroughputSincePreviousPublish() {
	a := t.aggregator(0, 1, 100)
	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 10))

	t.clock.AdvanceTime(2 * time.Second)
	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 20))

	cs, err := a.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	tp := cs.Nodes["0"].ThroughputMBps
	require.NotNil(t.T(), tp)
	// 10 files of 1 MiB in 2 seconds.
	assert.InDelta(t.T(), 5.0, *tp, 1e-9)
	assert.InDelta(t.T(), 5.0, cs.AggregateStats.TotalThroughputMBps, 1e-9)
}

func (t *AggregatorTest) TestNoElapsedTimeGivesNullThroughput() {
	a := t.aggregator(0, 1, 100)
	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 10))

	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 20))

	cs, err := a.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	assert.Nil(t.T(), cs.Nodes["0"].ThroughputMBps)
}

func (t *AggregatorTest) TestOtherNodesArePreserved() {
	other := t.aggregator(1, 2, 3)
	require.NoError(t.T(), other.MergeAndPublish(t.ctx, 3))
	before, err := os.ReadFile(filepath.Join(t.dir, StatusFileName))
	require.NoError(t.T(), err)
	var raw struct {
		Nodes map[string]json.RawMessage `json:"nodes"`
	}
	require.NoError(t.T(), json.Unmarshal(before, &raw))

	t.clock.AdvanceTime(time.Second)
	mine := t.aggregator(0, 2, 3)
	require.NoError(t.T(), mine.MergeAndPublish(t.ctx, 3))

	cs, err := mine.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	require.Len(t.T(), cs.Nodes, 2)
	got, err := json.Marshal(cs.Nodes["1"])
	require.NoError(t.T(), err)
	assert.JSONEq(t.T(), string(raw.Nodes["1"]), string(got))
	assert.Equal(t.T(), 2, cs.AggregateStats.ActiveNodes)
	assert.EqualValues(t.T(), 6, cs.AggregateStats.TotalFilesCreated)
	assert.InDelta(t.T(), 100.0, cs.AggregateStats.PercentComplete, 1e-9)
}

func (t *AggregatorTest) TestPeerTimestampsWithoutZone() {
	peer := `{
  "nodes": {
    "1": {
      "files_created": 2,
      "percent_complete": 66.7,
      "last_update": "2024-05-01T10:00:00.123456",
      "throughput_mb_s": 1.5,
      "node_metadata": {"hostname": "peer"}
    }
  },
  "timestamp": "2024-05-01T10:00:00.123456",
  "total_files": 6,
  "file_size_kb": 1024
}`
	require.NoError(t.T(), os.WriteFile(filepath.Join(t.dir, StatusFileName), []byte(peer), 0644))
	a := t.aggregator(0, 2, 3)

	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 3))

	data, err := os.ReadFile(filepath.Join(t.dir, StatusFileName))
	require.NoError(t.T(), err)
	assert.Contains(t.T(), string(data), `"last_update": "2024-05-01T10:00:00.123456"`)
	cs, err := a.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	assert.EqualValues(t.T(), 5, cs.AggregateStats.TotalFilesCreated)
	assert.True(t.T(), startTime.Equal(cs.Timestamp.Time))
}

func (t *AggregatorTest) TestFinishedNodesKeepLastThroughput() {
	finished := t.aggregator(1, 2, 20)
	require.NoError(t.T(), finished.MergeAndPublish(t.ctx, 10))
	t.clock.AdvanceTime(time.Second)
	require.NoError(t.T(), finished.MergeAndPublish(t.ctx, 20))

	t.clock.AdvanceTime(time.Hour)
	mine := t.aggregator(0, 2, 20)
	require.NoError(t.T(), mine.MergeAndPublish(t.ctx, 0))

	cs, err := mine.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	assert.Nil(t.T(), cs.Nodes["0"].ThroughputMBps)
	// 10 MiB in the last second of node 1.
	assert.InDelta(t.T(), 10.0, cs.AggregateStats.TotalThroughputMBps, 1e-9)
	assert.Equal(t.T(), 2, cs.AggregateStats.ActiveNodes)
}

func (t *AggregatorTest) TestReadFailureDropsPublish() {
	a := t.aggregator(0, 1, 10)
	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 2))
	t.store.failLoad = true

	err := a.MergeAndPublish(t.ctx, 5)

	var statusErr *StatusIOError
	require.ErrorAs(t.T(), err, &statusErr)
	assert.Equal(t.T(), "read", statusErr.Op)
	cs, err := a.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	assert.EqualValues(t.T(), 2, cs.Nodes["0"].FilesCreated)
}

func (t *AggregatorTest) TestFailedPublishKeepsThroughputBaseline() {
	a := t.aggregator(0, 1, 100)
	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 0))
	t.clock.AdvanceTime(time.Second)
	t.store.failSave = true
	var statusErr *StatusIOError
	require.ErrorAs(t.T(), a.MergeAndPublish(t.ctx, 4), &statusErr)
	assert.Equal(t.T(), "write", statusErr.Op)

	t.clock.AdvanceTime(time.Second)
	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 8))

	cs, err := a.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	require.NotNil(t.T(), cs.Nodes["0"].ThroughputMBps)
	// 8 MiB over the 2 seconds since the last successful publish.
	assert.InDelta(t.T(), 4.0, *cs.Nodes["0"].ThroughputMBps, 1e-9)
}

func (t *AggregatorTest) TestCorruptDocumentIsReadFailure() {
	require.NoError(t.T(), os.WriteFile(filepath.Join(t.dir, StatusFileName), []byte("{not json"), 0644))
	a := t.aggregator(0, 1, 10)

	err := a.MergeAndPublish(t.ctx, 1)

	var statusErr *StatusIOError
	require.ErrorAs(t.T(), err, &statusErr)
	assert.Equal(t.T(), "read", statusErr.Op)
}

func (t *AggregatorTest) TestZeroTargetIsComplete() {
	a := t.aggregator(0, 1, 0)

	require.NoError(t.T(), a.MergeAndPublish(t.ctx, 0))

	cs, err := a.Snapshot(t.ctx)
	require.NoError(t.T(), err)
	assert.InDelta(t.T(), 100.0, cs.Nodes["0"].PercentComplete, 1e-9)
	assert.InDelta(t.T(), 100.0, cs.AggregateStats.PercentComplete, 1e-9)
}

func TestAggregate(t *testing.T) {
	tp := 2.5
	nodes := map[string]NodeProgress{
		"0": {FilesCreated: 3, ThroughputMBps: &tp},
		"1": {FilesCreated: 1},
	}

	stats := Aggregate(nodes, 8)

	assert.Equal(t, AggregateStats{
		TotalThroughputMBps: 2.5,
		ActiveNodes:         2,
		TotalFilesCreated:   4,
		PercentComplete:     50,
	}, stats)
	assert.Equal(t, AggregateStats{PercentComplete: 100}, Aggregate(nil, 0))
}
