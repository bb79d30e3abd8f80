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

package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	cgroupV1MemLimitFile = "/sys/fs/cgroup/memory/memory.limit_in_bytes"
	cgroupV2MountPoint   = "/sys/fs/cgroup"
	procSelfCgroup       = "/proc/self/cgroup"
)

// TotalMemory returns the memory usable by this process in bytes: the
// container limit (cgroup v1 or v2) if one is set and lower than the
// physical memory, the physical memory otherwise.
func TotalMemory() (uint64, error) {
	sysMem, err := systemTotalMemory()
	if err != nil {
		return 0, err
	}

	memLimit, err := containerMemoryLimit()
	if err != nil {
		// Not in a container, or no limit is configured.
		return sysMem, nil
	}
	return min(memLimit, sysMem), nil
}

// AvailableDiskSpace returns the bytes available to unprivileged users on the
// file system holding dir.
func AvailableDiskSpace(dir string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", dir, err)
	}
	return st.Bavail * uint64(st.Bsize), nil
}

func systemTotalMemory() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return uint64(info.Totalram) * uint64(info.Unit), nil
}

func containerMemoryLimit() (uint64, error) {
	if _, err := os.Stat(filepath.Join(cgroupV2MountPoint, "cgroup.controllers")); err == nil {
		return cgroupV2MemoryLimit()
	}
	data, err := os.ReadFile(cgroupV1MemLimitFile)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
}

func cgroupV2MemoryLimit() (uint64, error) {
	cgroupPath, err := currentCgroupPathV2()
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(filepath.Join(cgroupV2MountPoint, cgroupPath, "memory.max"))
	if err != nil {
		return 0, err
	}

	s := strings.TrimSpace(string(data))
	if s == "max" {
		return 0, fmt.Errorf("memory limit is max")
	}
	return strconv.ParseUint(s, 10, 64)
}

func currentCgroupPathV2() (string, error) {
	f, err := os.Open(procSelfCgroup)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		// format: hierarchy-ID:controller-list:cgroup-path, e.g. "0::/user.slice"
		parts := strings.SplitN(scanner.Text(), ":", 3)
		if len(parts) == 3 && parts[0] == "0" && parts[1] == "" {
			return parts[2], nil
		}
	}
	return "", fmt.Errorf("cgroup v2 path not found in %s", procSelfCgroup)
}
