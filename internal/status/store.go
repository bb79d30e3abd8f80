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

package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// StatusFileName is the name of the shared document in the output directory.
const StatusFileName = ".dummy_data_status.json"

// Store persists the shared document.
type Store interface {
	// Load returns the current document, or an empty one if none exists yet.
	Load(ctx context.Context) (*ClusterStatus, error)
	// Save replaces the document.
	Save(ctx context.Context, cs *ClusterStatus) error
}

// FileStore keeps the document in a file on a file system shared by all
// nodes.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for the status document in dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, StatusFileName)}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*ClusterStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewClusterStatus(), nil
	}
	if err != nil {
		return nil, err
	}

	cs := NewClusterStatus()
	if err := json.Unmarshal(data, cs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	if cs.Nodes == nil {
		cs.Nodes = make(map[string]NodeProgress)
	}
	return cs, nil
}

// Save writes the document to a temporary file and renames it into place, so
// concurrent readers see either the old or the new document in full.
func (s *FileStore) Save(ctx context.Context, cs *ClusterStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}
	return renameio.WriteFile(s.path, data, 0644)
}
