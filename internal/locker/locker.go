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

// Provides the Locker implementations with optional debug utils.
package locker

import (
	"runtime"
	"sync"
	"time"

	"github.com/googlecloudplatform/dummygen/internal/logger"
)

var (
	gEnableDebugMessages bool

	// A lock held for longer than this is reported as a potential deadlock.
	holdWarningThreshold = 5 * time.Second
)

// EnableDebugMessages makes lockers created afterwards report locks that are
// held for too long.
func EnableDebugMessages() {
	gEnableDebugMessages = true
}

// New returns a locker with potential capability for debugging.
func New(name string) sync.Locker {
	var l sync.Locker = &sync.Mutex{}

	if gEnableDebugMessages {
		l = &debugger{
			locker: l,
			name:   name,
		}
	}

	return l
}

type debugger struct {
	locker sync.Locker
	name   string
	holder string
	timer  *time.Timer
}

func (d *debugger) Lock() {
	d.locker.Lock()

	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false /* all */)
	holder := string(buf[:n])
	d.holder = holder

	name := d.name
	d.timer = time.AfterFunc(holdWarningThreshold, func() {
		logger.Warnf("debug_mutex: Potential dead lock detected for a lock %q held by: %v", name, holder)
	})
}

func (d *debugger) Unlock() {
	d.holder = ""
	d.timer.Stop()
	d.timer = nil

	d.locker.Unlock()
}
