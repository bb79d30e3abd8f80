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

// Package partition divides one node's files among its workers.
package partition

// WorkRange is the contiguous block of local indices [Start, Start+Count)
// assigned to a single worker.
type WorkRange struct {
	Start int64
	Count int64
}

// End returns one past the last local index of the range.
func (r WorkRange) End() int64 {
	return r.Start + r.Count
}

// Partition splits [0, total) into at most workers contiguous ranges whose
// sizes differ by at most one. The first total%workers ranges receive the
// extra item. Empty ranges are dropped, so fewer than workers ranges are
// returned when total < workers.
func Partition(total, workers int64) []WorkRange {
	if workers < 1 {
		workers = 1
	}
	if total <= 0 {
		return nil
	}

	base := total / workers
	extra := total % workers

	ranges := make([]WorkRange, 0, min(total, workers))
	var start int64
	for i := int64(0); i < workers; i++ {
		count := base
		if i < extra {
			count++
		}
		if count == 0 {
			continue
		}
		ranges = append(ranges, WorkRange{Start: start, Count: count})
		start += count
	}
	return ranges
}
