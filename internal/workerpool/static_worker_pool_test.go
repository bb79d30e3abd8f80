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

package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type dummyTask struct {
	executed atomic.Bool
}

func (d *dummyTask) Execute() {
	d.executed.Store(true)
}

// blockingTask tracks how many tasks run at the same time.
type blockingTask struct {
	running *atomic.Int32
	peak    *atomic.Int32
	release <-chan struct{}
}

func (b *blockingTask) Execute() {
	n := b.running.Add(1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	<-b.release
	b.running.Add(-1)
}

func TestNewStaticWorkerPool_Success(t *testing.T) {
	pool, err := NewStaticWorkerPool(3)

	require.NoError(t, err)
	require.NotNil(t, pool)
	assert.Equal(t, uint32(3), pool.workers)
	pool.Stop()
}

func TestNewStaticWorkerPool_Failure(t *testing.T) {
	pool, err := NewStaticWorkerPool(0)

	assert.Error(t, err)
	assert.Nil(t, pool)
}

func TestStaticWorkerPool_ExecutesAllTasks(t *testing.T) {
	pool, err := NewStaticWorkerPool(4)
	require.NoError(t, err)
	tasks := make([]*dummyTask, 100)

	for i := range tasks {
		tasks[i] = &dummyTask{}
		pool.Schedule(tasks[i])
	}
	pool.Stop()

	for i, task := range tasks {
		assert.True(t, task.executed.Load(), "task %d was not executed", i)
	}
}

func TestStaticWorkerPool_BoundsConcurrency(t *testing.T) {
	pool, err := NewStaticWorkerPool(2)
	require.NoError(t, err)
	var running, peak atomic.Int32
	release := make(chan struct{})
	var scheduled sync.WaitGroup

	scheduled.Add(1)
	go func() {
		defer scheduled.Done()
		for range 5 {
			pool.Schedule(&blockingTask{running: &running, peak: &peak, release: release})
		}
	}()
	assert.Eventually(t, func() bool { return running.Load() == 2 }, time.Second, time.Millisecond)
	close(release)
	scheduled.Wait()
	pool.Stop()

	assert.Equal(t, int32(2), peak.Load())
	assert.Equal(t, int32(0), running.Load())
}

func TestStaticWorkerPool_ScheduleAfterStop(t *testing.T) {
	pool, err := NewStaticWorkerPool(2)
	require.NoError(t, err)

	pool.Stop()

	assert.Panics(t, func() { pool.Schedule(&dummyTask{}) }, "Should panic when scheduling after stop.")
}
