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

// Package writer materializes generated content as files in the output
// directory.
package writer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/googlecloudplatform/dummygen/internal/identity"
	"github.com/googlecloudplatform/dummygen/internal/metrics"
	"github.com/googlecloudplatform/dummygen/internal/ratelimit"
)

const filePerm = 0644

// ErrPathCollision is returned when the target file already exists. The
// existing file is left untouched.
var ErrPathCollision = errors.New("file already exists")

// FileIOError reports that a single file could not be written.
type FileIOError struct {
	Path string
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error {
	return e.Err
}

// Writer creates generated files in one directory. It is safe for
// concurrent use.
type Writer struct {
	dir      string
	throttle ratelimit.Throttle
	metrics  metrics.MetricHandle
}

// New returns a Writer creating files under dir. A nil throttle disables
// bandwidth limiting.
func New(dir string, throttle ratelimit.Throttle, metricHandle metrics.MetricHandle) *Writer {
	if metricHandle == nil {
		metricHandle = metrics.NewNoopMetrics()
	}
	return &Writer{
		dir:      dir,
		throttle: throttle,
		metrics:  metricHandle,
	}
}

// Path returns the location of the file for id.
func (w *Writer) Path(id identity.FileIdentity) string {
	return filepath.Join(w.dir, id.FileName())
}

// Write creates the file for id with the given content. It returns an error
// wrapping ErrPathCollision if the file already exists, and a *FileIOError
// for any other failure. Failures only affect this one file.
func (w *Writer) Write(ctx context.Context, id identity.FileIdentity, content []byte) error {
	path := w.Path(id)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			w.metrics.FileSkipped()
			return fmt.Errorf("%s: %w", path, ErrPathCollision)
		}
		w.metrics.FileFailed()
		return &FileIOError{Path: path, Err: err}
	}

	var dst io.Writer = f
	if w.throttle != nil {
		dst = ratelimit.ThrottledWriter(ctx, f, w.throttle)
	}
	_, err = dst.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Don't leave a truncated file behind; a rerun would skip it.
		_ = os.Remove(path)
		w.metrics.FileFailed()
		return &FileIOError{Path: path, Err: err}
	}

	w.metrics.FileCreated(int64(len(content)))
	return nil
}
