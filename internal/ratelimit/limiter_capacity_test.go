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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseLimiterCapacity_IllegalInput(t *testing.T) {
	testCases := []struct {
		name        string
		rateHz      float64
		window      time.Duration
		expectedErr error
	}{
		{"negative rate", -1, time.Second, fmt.Errorf("Illegal rate: %f", -1.0)},
		{"zero rate", 0, time.Second, fmt.Errorf("Illegal rate: %f", 0.0)},
		{"negative window", 1, -1, fmt.Errorf("Illegal window: %v", time.Duration(-1))},
		{"zero window", 1, 0, fmt.Errorf("Illegal window: %v", time.Duration(0))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ChooseLimiterCapacity(tc.rateHz, tc.window)

			require.Error(t, err)
			assert.Equal(t, tc.expectedErr.Error(), err.Error())
		})
	}
}

func TestChooseLimiterCapacity_TooSmallOrTooLarge(t *testing.T) {
	_, err := ChooseLimiterCapacity(0.5, time.Second)
	assert.ErrorContains(t, err, "capacity of 0.5")

	_, err = ChooseLimiterCapacity(1e12, time.Second)
	assert.ErrorContains(t, err, "too large")
}

func TestChooseLimiterCapacity(t *testing.T) {
	capacity, err := ChooseLimiterCapacity(1<<20, 100*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, (1<<20)/10, capacity)
}
