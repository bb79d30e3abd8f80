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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	KiB = 1 << 10
	MiB = 1 << 20
	GiB = 1 << 30
)

// GetResolvedPath returns an absolute version of filePath.
//  1. Returns the same filepath in case of absolute path or empty filename.
//  2. For relative path starting with ~, it resolves with respect to home dir.
//  3. Any other relative path is resolved against the working directory.
func GetResolvedPath(filePath string) (resolvedPath string, err error) {
	if filePath == "" || filepath.IsAbs(filePath) {
		resolvedPath = filePath
		return
	}

	// Relative path starting with tilda (~)
	if strings.HasPrefix(filePath, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("fetch home dir: %w", err)
		}
		return filepath.Join(homeDir, filePath[2:]), nil
	}

	return filepath.Abs(filePath)
}

// BytesToMiB converts a byte count to MiB.
func BytesToMiB(bytes int64) float64 {
	return float64(bytes) / MiB
}

// Present the supplied number of bytes in a human-readable format.
func FormatBytes(v float64) string {
	switch {
	case v >= GiB:
		return fmt.Sprintf("%.2f GiB", v/GiB)

	case v >= MiB:
		return fmt.Sprintf("%.2f MiB", v/MiB)

	case v >= KiB:
		return fmt.Sprintf("%.2f KiB", v/KiB)

	default:
		return fmt.Sprintf("%.2f bytes", v)
	}
}
