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
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// staticWorkerPool runs tasks on at most a fixed number of goroutines.
type staticWorkerPool struct {
	workers uint32
	group   errgroup.Group

	mu      sync.Mutex
	stopped bool
}

// NewStaticWorkerPool returns a pool that executes at most workers tasks at a
// time.
func NewStaticWorkerPool(workers uint32) (*staticWorkerPool, error) {
	if workers == 0 {
		return nil, fmt.Errorf("invalid number of workers: %d", workers)
	}
	p := &staticWorkerPool{workers: workers}
	p.group.SetLimit(int(workers))
	return p, nil
}

func (p *staticWorkerPool) Schedule(task Task) {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped {
		panic("workerpool: Schedule called after Stop")
	}

	p.group.Go(func() error {
		task.Execute()
		return nil
	})
}

func (p *staticWorkerPool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	_ = p.group.Wait()
}
