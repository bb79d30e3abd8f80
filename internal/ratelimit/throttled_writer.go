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

package ratelimit

import (
	"context"
	"io"
)

// Create a writer that limits the bandwidth of writes made to w according to
// the supplied throttle. Writes are assumed to be made under the supplied
// context.
func ThrottledWriter(
	ctx context.Context,
	w io.Writer,
	throttle Throttle) io.Writer {
	return &throttledWriter{
		ctx:      ctx,
		wrapped:  w,
		throttle: throttle,
	}
}

type throttledWriter struct {
	ctx      context.Context
	wrapped  io.Writer
	throttle Throttle
}

func (tw *throttledWriter) Write(p []byte) (n int, err error) {
	capacity := tw.throttle.Capacity()
	if capacity == 0 {
		return 0, io.ErrShortWrite
	}

	// We can't acquire more than the throttle's capacity at once, so feed the
	// wrapped writer in chunks.
	for len(p) > 0 {
		chunk := p
		if uint64(len(chunk)) > capacity {
			chunk = chunk[:capacity]
		}

		// Wait for permission to continue.
		err = tw.throttle.Wait(tw.ctx, uint64(len(chunk)))
		if err != nil {
			return
		}

		var tmp int
		tmp, err = tw.wrapped.Write(chunk)
		n += tmp
		if err != nil {
			return
		}
		p = p[tmp:]
	}

	return
}
