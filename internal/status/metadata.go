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
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/googlecloudplatform/dummygen/cfg"
	"github.com/googlecloudplatform/dummygen/internal/logger"
	"github.com/googlecloudplatform/dummygen/internal/util"
)

// HostProber reports optional facts about the host. Either method may fail
// on platforms or sandboxes that do not expose the information.
type HostProber interface {
	TotalMemory() (uint64, error)
	AvailableDiskSpace(dir string) (uint64, error)
}

type hostProber struct{}

func (hostProber) TotalMemory() (uint64, error) {
	return util.TotalMemory()
}

func (hostProber) AvailableDiskSpace(dir string) (uint64, error) {
	return util.AvailableDiskSpace(dir)
}

// DefaultHostProber probes the local machine.
func DefaultHostProber() HostProber {
	return hostProber{}
}

// ProbeNodeMetadata describes this node for the run rc. Facts the prober
// cannot supply are left out of the result.
func ProbeNodeMetadata(rc cfg.RunConfig, prober HostProber) NodeMetadata {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	md := NodeMetadata{
		RunID:       uuid.NewString(),
		Hostname:    hostname,
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		CPUCount:    runtime.NumCPU(),
		WorkerCount: rc.Workers,
		TargetFiles: rc.FilesPerNode,
		FileSizeKB:  float64(rc.FileSizeBytes) / util.KiB,
	}

	if mem, err := prober.TotalMemory(); err == nil {
		md.TotalMemoryBytes = &mem
	} else {
		logger.Debugf("Total memory unavailable: %v", err)
	}
	if disk, err := prober.AvailableDiskSpace(rc.OutputDir); err == nil {
		md.AvailableDiskBytes = &disk
	} else {
		logger.Debugf("Available disk space unavailable: %v", err)
	}
	return md
}
