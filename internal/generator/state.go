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

package generator

import "fmt"

// State is the lifecycle stage of a Coordinator. Stages are only ever
// entered in increasing order.
type State int32

const (
	Init State = iota
	Partitioned
	Running
	Draining
	Done
)

func (s State) String() string {
	switch s {
	case Init:
		return "INIT"
	case Partitioned:
		return "PARTITIONED"
	case Running:
		return "RUNNING"
	case Draining:
		return "DRAINING"
	case Done:
		return "DONE"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}
