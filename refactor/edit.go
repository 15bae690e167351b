// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"rsc.io/lodashsplit/diff"
	"rsc.io/lodashsplit/edit"
)

// An Edit is the set of changes planned for one file.
type Edit struct {
	Name    string
	OldText []byte
	Buffer  *edit.Buffer
}

// NewText returns the file contents with the edits applied.
func (e *Edit) NewText() []byte {
	return e.Buffer.Bytes()
}

func (s *Snapshot) editAt(name string) *Edit {
	s.mu.Lock()
	defer s.mu.Unlock()
	ed := s.edits[name]
	if ed != nil {
		return ed
	}
	f := s.files[name]
	if f == nil {
		panic("file not found: " + name)
	}
	ed = &Edit{Name: name, OldText: f.Text, Buffer: edit.NewBuffer(f.Text)}
	s.edits[name] = ed
	return ed
}

// ReplaceAt queues the replacement of name's original text[lo:hi] with repl.
// Replacements in one file must be queued in ascending order.
func (s *Snapshot) ReplaceAt(name string, lo, hi int, repl string) {
	s.editAt(name).Buffer.Replace(lo, hi, repl)
}

// InsertAt queues the insertion of repl at pos in name.
func (s *Snapshot) InsertAt(name string, pos int, repl string) {
	s.ReplaceAt(name, pos, pos, repl)
}

// DeleteAt queues the deletion of name's original text[pos:end].
func (s *Snapshot) DeleteAt(name string, pos, end int) {
	s.ReplaceAt(name, pos, end, "")
}

// Overwrite replaces the entire contents of name with text.
func (s *Snapshot) Overwrite(name string, text []byte) {
	old := s.File(name).Text
	s.mu.Lock()
	defer s.mu.Unlock()
	b := edit.NewBuffer(old)
	b.Replace(0, len(old), string(text))
	s.edits[name] = &Edit{Name: name, OldText: old, Buffer: b}
}

func (s *Snapshot) currentBytes(name string) []byte {
	s.mu.Lock()
	ed, f := s.edits[name], s.files[name]
	s.mu.Unlock()
	if ed != nil {
		return ed.NewText()
	}
	if f == nil {
		return nil
	}
	return f.Text
}

func (s *Snapshot) oldBytes(name string) []byte {
	f := s.File(name)
	if f == nil {
		return nil
	}
	return f.Text
}

// sortedNames returns names sorted by directory, then by name.
func sortedNames(names []string) []string {
	sort.Slice(names, func(i, j int) bool {
		di, dj := filepath.Dir(names[i]), filepath.Dir(names[j])
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})
	return names
}

// Diff returns a unified diff of every file the snapshot changes.
func (s *Snapshot) Diff() ([]byte, error) {
	var diffs []byte
	for _, name := range sortedNames(s.Files()) {
		new := s.currentBytes(name)
		old := s.oldBytes(name)
		if bytes.Equal(old, new) {
			continue
		}
		rel := filepath.ToSlash(s.r.shortPath(name))
		d, err := diff.Diff("old/"+rel, old, "new/"+rel, new)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d...)
	}
	return diffs, nil
}

// Write writes every changed file back in place.
// Files are replaced whole; unchanged files are never written.
func (s *Snapshot) Write() error {
	failed := false
	for _, name := range sortedNames(s.Files()) {
		new := s.currentBytes(name)
		old := s.oldBytes(name)
		if bytes.Equal(old, new) {
			continue
		}
		mode := os.FileMode(0666)
		if info, err := s.r.fs.Stat(name); err == nil {
			mode = info.Mode().Perm()
		}
		if err := afero.WriteFile(s.r.fs, name, new, mode); err != nil {
			fmt.Fprintf(s.r.Stderr, "%s\n", err)
			failed = true
			continue
		}
		s.r.Log.Debug("wrote file", zap.String("file", s.r.shortPath(name)))
	}
	if failed {
		return fmt.Errorf("errors writing files")
	}
	return nil
}

// Modified returns the names of the files the snapshot changes, sorted.
func (s *Snapshot) Modified() []string {
	var names []string
	for _, name := range s.Files() {
		if !bytes.Equal(s.oldBytes(name), s.currentBytes(name)) {
			names = append(names, name)
		}
	}
	return names
}
