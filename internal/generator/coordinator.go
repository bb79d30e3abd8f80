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

// Package generator drives the generation of one node's share of a run.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/clock"
	"github.com/googlecloudplatform/dummygen/internal/content"
	"github.com/googlecloudplatform/dummygen/internal/identity"
	"github.com/googlecloudplatform/dummygen/internal/locker"
	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/googlecloudplatform/dummygen/internal/metrics"
	"github.com/googlecloudplatform/dummygen/internal/partition"
	"github.com/googlecloudplatform/dummygen/internal/ratelimit"
	"github.com/googlecloudplatform/dummygen/internal/status"
	"github.com/googlecloudplatform/dummygen/internal/util"
	"github.com/googlecloudplatform/dummygen/internal/workerpool"
	"github.com/googlecloudplatform/dummygen/internal/writer"
)

// StatusPublishInterval is the number of successful writes between two
// periodic status publishes.
const StatusPublishInterval = 10

const dirPerm = 0755

// Report summarizes a finished run of one node.
type Report struct {
	FilesCreated        int64
	FilesSkipped        int64
	FilesFailed         int64
	BytesWritten        int64
	Elapsed             time.Duration
	LocalThroughputMBps float64

	// Nil if the shared status could not be read back.
	Cluster *status.AggregateStats
}

type Option func(*Coordinator)

// WithStore replaces the shared status file in the output directory.
func WithStore(s status.Store) Option {
	return func(c *Coordinator) { c.store = s }
}

func WithClock(clk clock.Clock) Option {
	return func(c *Coordinator) { c.clock = clk }
}

// WithThrottle bounds the write bandwidth of all workers together.
func WithThrottle(t ratelimit.Throttle) Option {
	return func(c *Coordinator) { c.throttle = t }
}

func WithMetrics(m metrics.MetricHandle) Option {
	return func(c *Coordinator) { c.metrics = m }
}

func WithContent(newGenerator func() content.Generator) Option {
	return func(c *Coordinator) { c.newContent = newGenerator }
}

func WithHostProber(p status.HostProber) Option {
	return func(c *Coordinator) { c.prober = p }
}

// Coordinator generates the files of one node and keeps the shared status
// up to date. A Coordinator runs once.
type Coordinator struct {
	rc         cfg.RunConfig
	store      status.Store
	clock      clock.Clock
	throttle   ratelimit.Throttle
	metrics    metrics.MetricHandle
	newContent func() content.Generator
	prober     status.HostProber

	state atomic.Int32

	// Set up during INIT.
	writer     *writer.Writer
	aggregator *status.Aggregator

	// Protects the counters below and serializes status publishes.
	mu           sync.Locker
	filesCreated int64 // GUARDED_BY(mu)
	filesSkipped int64 // GUARDED_BY(mu)
	filesFailed  int64 // GUARDED_BY(mu)
	bytesWritten int64 // GUARDED_BY(mu)
}

func New(rc cfg.RunConfig, opts ...Option) *Coordinator {
	c := &Coordinator{
		rc:         rc,
		clock:      clock.RealClock{},
		metrics:    metrics.NewNoopMetrics(),
		newContent: content.NewRandom,
		prober:     status.DefaultHostProber(),
		mu:         locker.New("Coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = status.NewFileStore(rc.OutputDir)
	}
	return c
}

// State returns the current lifecycle stage.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

func (c *Coordinator) setState(s State) {
	c.state.Store(int32(s))
	logger.Debugf("Node %d: %v", c.rc.NodeID, s)
}

// Run generates every file assigned to this node. Only an invalid
// configuration, returned as a *cfg.ConfigError, or an output directory
// that cannot be created abort the run. Failures of single files and of
// status publishes are logged and counted.
func (c *Coordinator) Run(ctx context.Context) (*Report, error) {
	c.setState(Init)
	if err := c.rc.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.rc.OutputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	c.writer = writer.New(c.rc.OutputDir, c.throttle, c.metrics)
	c.aggregator = status.NewAggregator(c.store, c.clock, c.rc, status.ProbeNodeMetadata(c.rc, c.prober))

	ranges := partition.Partition(c.rc.FilesPerNode, c.rc.Workers)
	c.setState(Partitioned)

	logger.Infof("Starting generation of %d files (%.2f KB each)", c.rc.FilesPerNode, float64(c.rc.FileSizeBytes)/util.KiB)
	logger.Infof("Using %d threads", c.rc.Workers)
	start := c.clock.Now()

	c.setState(Running)
	c.mu.Lock()
	c.publish(ctx)
	c.mu.Unlock()

	if len(ranges) > 0 {
		pool, err := workerpool.NewStaticWorkerPool(uint32(len(ranges)))
		if err != nil {
			return nil, fmt.Errorf("creating worker pool: %w", err)
		}
		for _, r := range ranges {
			pool.Schedule(&rangeTask{ctx: ctx, c: c, r: r})
		}
		c.setState(Draining)
		pool.Stop()
	} else {
		c.setState(Draining)
	}
	elapsed := c.clock.Now().Sub(start)

	c.setState(Done)
	c.mu.Lock()
	c.publish(ctx)
	report := &Report{
		FilesCreated: c.filesCreated,
		FilesSkipped: c.filesSkipped,
		FilesFailed:  c.filesFailed,
		BytesWritten: c.bytesWritten,
		Elapsed:      elapsed,
	}
	c.mu.Unlock()

	if elapsed > 0 {
		report.LocalThroughputMBps = util.BytesToMiB(report.BytesWritten) / elapsed.Seconds()
	}
	logger.Infof("Completed in %.2f seconds", elapsed.Seconds())
	logger.Infof("Total data generated: %s", util.FormatBytes(float64(report.BytesWritten)))
	logger.Infof("Local throughput: %.2f MiB/s", report.LocalThroughputMBps)

	cs, err := c.aggregator.Snapshot(ctx)
	if err != nil {
		logger.Warnf("Cluster status unavailable: %v", err)
		return report, nil
	}
	report.Cluster = &cs.AggregateStats
	logger.Infof("Cluster: %d/%d files (%.1f%%) from %d nodes, %.2f MiB/s total",
		cs.AggregateStats.TotalFilesCreated,
		cs.TotalFiles,
		cs.AggregateStats.PercentComplete,
		cs.AggregateStats.ActiveNodes,
		cs.AggregateStats.TotalThroughputMBps)
	return report, nil
}

// LOCKS_REQUIRED(c.mu)
func (c *Coordinator) publish(ctx context.Context) {
	err := c.aggregator.MergeAndPublish(ctx, c.filesCreated)
	c.metrics.StatusPublished(err)
	if err != nil {
		logger.Warnf("Status update failed: %v", err)
	}
}

// generate creates the file for local index i.
func (c *Coordinator) generate(ctx context.Context, gen content.Generator, i int64) {
	id := identity.New(i, c.rc.NodeID, c.rc.NodeCount)
	data := gen.Generate(c.rc.FileSizeBytes)
	err := c.writer.Write(ctx, id, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case errors.Is(err, writer.ErrPathCollision):
		c.filesSkipped++
		logger.Warnf("%s already exists, skipping", c.writer.Path(id))
	case err != nil:
		c.filesFailed++
		logger.Errorf("Error creating file: %v", err)
	default:
		c.filesCreated++
		c.bytesWritten += int64(len(data))
		logger.Infof("Created %s (%.2f KB)", c.writer.Path(id), float64(len(data))/util.KiB)
		if c.filesCreated%StatusPublishInterval == 0 {
			c.publish(ctx)
		}
	}
}

// rangeTask generates the files of one WorkRange.
type rangeTask struct {
	ctx context.Context
	c   *Coordinator
	r   partition.WorkRange
}

func (t *rangeTask) Execute() {
	gen := t.c.newContent()
	for i := t.r.Start; i < t.r.End(); i++ {
		t.c.generate(t.ctx, gen, i)
	}
}
