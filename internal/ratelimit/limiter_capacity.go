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
	"fmt"
	"math"
	"time"
)

// Choose a token bucket capacity that holds one window's worth of events, so
// that bursts never exceed `rateHz * window` and the long run rate stays at
// rateHz.
func ChooseLimiterCapacity(
	rateHz float64,
	window time.Duration) (capacity int, err error) {
	// Check that things are reasonable.
	switch {
	case rateHz <= 0 || math.IsInf(rateHz, 0):
		err = fmt.Errorf("Illegal rate: %f", rateHz)
		return

	case window <= 0:
		err = fmt.Errorf("Illegal window: %v", window)
		return
	}

	floatCapacity := rateHz * window.Seconds()

	switch {
	case floatCapacity < 1:
		err = fmt.Errorf(
			"Can't use a token bucket to limit to %f Hz over a window of %v "+
				"(result is a capacity of %f)",
			rateHz,
			window,
			floatCapacity)
		return

	case floatCapacity > math.MaxInt32:
		err = fmt.Errorf(
			"Can't use a token bucket to limit to %f Hz over a window of %v "+
				"(result is a capacity of %f, which is too large)",
			rateHz,
			window,
			floatCapacity)
		return
	}

	capacity = int(floatCapacity)
	return
}
