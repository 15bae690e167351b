// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// and reports the differences in unified diff format.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff of old and new, or nil if they are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	u := difflib.UnifiedDiff{
		A:        splitLines(string(old)),
		B:        splitLines(string(new)),
		FromFile: oldName,
		ToFile:   newName,
		Context:  3,
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "diff %s %s\n", oldName, newName)
	if err := difflib.WriteUnifiedDiff(&buf, u); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// splitLines splits s after each newline,
// terminating a final unterminated line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}

// Colorize returns d with removed lines in red, added lines in green
// and hunk headers in cyan. It returns d unchanged when color is disabled.
func Colorize(d []byte) []byte {
	if color.NoColor {
		return d
	}
	var (
		del  = color.New(color.FgRed)
		add  = color.New(color.FgGreen)
		hunk = color.New(color.FgCyan)
		head = color.New(color.Bold)
	)
	var buf bytes.Buffer
	for _, line := range splitLines(string(d)) {
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "diff "), strings.HasPrefix(text, "--- "), strings.HasPrefix(text, "+++ "):
			buf.WriteString(head.Sprint(text))
		case strings.HasPrefix(text, "@@"):
			buf.WriteString(hunk.Sprint(text))
		case strings.HasPrefix(text, "-"):
			buf.WriteString(del.Sprint(text))
		case strings.HasPrefix(text, "+"):
			buf.WriteString(add.Sprint(text))
		default:
			buf.WriteString(text)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
