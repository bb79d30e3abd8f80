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

// Package content produces incompressible filler bytes for generated files.
package content

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// Generator produces file content.
type Generator interface {
	// Generate returns n bytes of content. The returned slice may be reused by
	// the next call to Generate.
	Generate(n int64) []byte
}

// NewRandom returns a Generator backed by a ChaCha8 stream with a fresh
// random seed. The returned generator is not safe for concurrent use; create
// one per worker.
func NewRandom() Generator {
	var seed [32]byte
	// crypto/rand.Read never returns an error.
	_, _ = crand.Read(seed[:])
	return &randomGenerator{src: rand.NewChaCha8(seed)}
}

type randomGenerator struct {
	src *rand.ChaCha8
	buf []byte
}

func (g *randomGenerator) Generate(n int64) []byte {
	if n <= 0 {
		return []byte{}
	}
	if int64(cap(g.buf)) < n {
		g.buf = make([]byte, n)
	}
	g.buf = g.buf[:n]
	// ChaCha8.Read always fills the whole slice.
	_, _ = g.src.Read(g.buf)
	return g.buf
}
