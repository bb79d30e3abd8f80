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

package metrics

import "context"

type ShutdownFn func(ctx context.Context) error

// MetricHandle records the outcome of file and status operations of a node.
// Implementations are safe for concurrent use.
type MetricHandle interface {
	// FileCreated records one newly written file of the given size.
	FileCreated(bytes int64)
	// FileSkipped records a file that already existed.
	FileSkipped()
	// FileFailed records a file that could not be written.
	FileFailed()
	// StatusPublished records a publish attempt of the shared status.
	StatusPublished(err error)
}

func NewNoopMetrics() MetricHandle {
	var n noopMetrics
	return &n
}

type noopMetrics struct{}

func (*noopMetrics) FileCreated(_ int64) {}
func (*noopMetrics) FileSkipped() {}
func (*noopMetrics) FileFailed() {}
func (*noopMetrics) StatusPublished(_ error) {}
