// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor applies the lodash import rewrite to a project tree.
package refactor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rsc.io/lodashsplit/diff"
	"rsc.io/lodashsplit/edit"
	"rsc.io/lodashsplit/imports"
	"rsc.io/lodashsplit/tsconfig"
)

// DefaultExts lists the file extensions rewritten by default.
var DefaultExts = []string{".ts"}

// A Refactor holds the state for an active refactoring.
type Refactor struct {
	fs  afero.Fs
	dir string

	Module   string   // aggregate module name
	Src      string   // subtree of dir to rewrite
	Exts     []string // file extensions to rewrite
	TSConfig string   // project configuration file, relative to dir; "" to skip
	Jobs     int      // files processed in parallel; <= 0 means GOMAXPROCS

	ShowDiff bool // print a diff instead of writing files
	Color    bool // colorize the diff
	Stdout   io.Writer
	Stderr   io.Writer
	Log      *zap.Logger
}

// New returns a new refactoring of the project rooted at dir in fsys.
func New(fsys afero.Fs, dir string) (*Refactor, error) {
	dir = filepath.Clean(dir)
	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	r := &Refactor{
		fs:       fsys,
		dir:      dir,
		Module:   imports.DefaultModule,
		Src:      "src",
		Exts:     DefaultExts,
		TSConfig: tsconfig.DefaultFile,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Log:      zap.NewNop(),
	}
	return r, nil
}

// Dir returns the project root.
func (r *Refactor) Dir() string {
	return r.dir
}

// shortPath returns the path of name relative to the project root,
// or name itself if it is outside the root.
func (r *Refactor) shortPath(name string) string {
	rel, err := filepath.Rel(r.dir, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return name
	}
	return rel
}

// Run loads the project, plans every rewrite and then either
// prints the diff or writes the changed files.
func (r *Refactor) Run(ctx context.Context) error {
	s, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if r.ShowDiff {
		d, err := s.Diff()
		if err != nil {
			return err
		}
		if r.Color {
			d = diff.Colorize(d)
		}
		_, err = r.Stdout.Write(d)
		return err
	}
	return s.Write()
}

// Load plans the rewrite of every source file and of the project
// configuration, and returns the snapshot holding the new contents.
// Nothing is written.
func (r *Refactor) Load(ctx context.Context) (*Snapshot, error) {
	names, err := r.sourceFiles()
	if err != nil {
		return nil, err
	}

	s := newSnapshot(r)
	if err := r.rewriteImports(ctx, s, names); err != nil {
		return nil, err
	}
	if r.TSConfig != "" {
		if err := r.enableSyntheticDefaults(s); err != nil {
			return nil, err
		}
	}
	r.Log.Info("planned rewrite",
		zap.Int("files", len(names)),
		zap.Int("changed", len(s.Modified())))
	return s, nil
}

// sourceFiles returns the files under the source tree
// with one of the configured extensions, in lexical order.
func (r *Refactor) sourceFiles() ([]string, error) {
	root := filepath.Join(r.dir, r.Src)
	exts := make(map[string]bool)
	for _, ext := range r.Exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	var names []string
	err := afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			base := info.Name()
			if path != root && (base == "node_modules" || strings.HasPrefix(base, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if exts[filepath.Ext(path)] {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

type fileResult struct {
	text  []byte
	edits []edit.Edit
	err   error
}

// rewriteImports plans the import rewrite of each named file.
// Files are independent, so they are parsed in parallel;
// the edits of one file are always applied in source order.
func (r *Refactor) rewriteImports(ctx context.Context, s *Snapshot, names []string) error {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]fileResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.planFile(gctx, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs ErrorList
	for i, name := range names {
		res := results[i]
		if res.err != nil {
			errs.Add(fileError(r.shortPath(name), res.err))
			continue
		}
		if len(res.edits) == 0 {
			continue
		}
		s.addFile(name, res.text)
		for _, e := range res.edits {
			s.ReplaceAt(name, e.Pos, e.End(), e.New)
		}
		r.Log.Debug("rewrote imports",
			zap.String("file", r.shortPath(name)),
			zap.Int("imports", len(res.edits)))
	}
	return errs.Err()
}

func (r *Refactor) planFile(ctx context.Context, name string) fileResult {
	text, err := afero.ReadFile(r.fs, name)
	if err != nil {
		return fileResult{err: err}
	}
	tree, err := imports.Parse(ctx, name, text)
	if err != nil {
		return fileResult{err: err}
	}
	defer tree.Close()
	return fileResult{
		text:  text,
		edits: imports.Match(tree.RootNode(), text, r.Module),
	}
}

// enableSyntheticDefaults turns on allowSyntheticDefaultImports in the
// project configuration so the rewritten default imports type-check.
func (r *Refactor) enableSyntheticDefaults(s *Snapshot) error {
	name := filepath.Join(r.dir, r.TSConfig)
	data, err := afero.ReadFile(r.fs, name)
	if err != nil {
		return err
	}
	out, changed, err := tsconfig.EnableSyntheticDefaultImports(data)
	if err != nil {
		return fmt.Errorf("%s: %w", r.shortPath(name), err)
	}
	if !changed {
		r.Log.Debug("allowSyntheticDefaultImports already enabled", zap.String("file", r.shortPath(name)))
		return nil
	}
	s.addFile(name, data)
	s.Overwrite(name, out)
	return nil
}
