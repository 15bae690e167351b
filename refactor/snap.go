// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"sort"
	"sync"
)

// A File is a source file as it was read from the project.
type File struct {
	Name string
	Text []byte
}

// A Snapshot is the planned state of the project:
// the files that were read and the edits queued against them.
type Snapshot struct {
	r *Refactor

	mu    sync.Mutex
	files map[string]*File
	edits map[string]*Edit
}

func newSnapshot(r *Refactor) *Snapshot {
	return &Snapshot{
		r:     r,
		files: make(map[string]*File),
		edits: make(map[string]*Edit),
	}
}

func (s *Snapshot) addFile(name string, text []byte) *File {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.files[name]
	if f == nil {
		f = &File{Name: name, Text: text}
		s.files[name] = f
	}
	return f
}

// File returns the named file, or nil if the snapshot never read it.
func (s *Snapshot) File(name string) *File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[name]
}

// Files returns the names of the files in the snapshot, sorted.
func (s *Snapshot) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
