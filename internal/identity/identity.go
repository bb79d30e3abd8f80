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

// Package identity maps node-local work indices to file identities that are
// unique across every node of a distributed run.
//
// Node i of a run with n nodes owns exactly the global indices that are
// congruent to i modulo n. Uniqueness therefore holds only if every node is
// launched with the same node count, which the caller has to guarantee.
package identity

import "fmt"

// FileIdentity identifies one unit of work.
type FileIdentity struct {
	NodeID      int64
	LocalIndex  int64
	GlobalIndex int64
}

// GlobalIndex returns localIndex*nodeCount + nodeID.
func GlobalIndex(localIndex, nodeID, nodeCount int64) int64 {
	return localIndex*nodeCount + nodeID
}

// New computes the identity of the given local index on the given node.
func New(localIndex, nodeID, nodeCount int64) FileIdentity {
	return FileIdentity{
		NodeID:      nodeID,
		LocalIndex:  localIndex,
		GlobalIndex: GlobalIndex(localIndex, nodeID, nodeCount),
	}
}

// FileName returns the output file name, e.g. dummy_n1_7.dat.
func (id FileIdentity) FileName() string {
	return fmt.Sprintf("dummy_n%d_%d.dat", id.NodeID, id.GlobalIndex)
}
