// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edit applies a sequence of text replacements to a file's contents.
//
// Every Edit locates its span in the coordinates of the original text.
// Edits are applied one at a time, in the order given, to a running copy of
// the text; a cumulative offset maps each later span from original
// coordinates into the partially rewritten buffer. For that mapping to be
// correct the edits must be in ascending order of position and must not
// overlap. That is a precondition of this package and is not checked.
package edit

import (
	"fmt"
	"strings"
)

// An Edit replaces Len bytes at Pos in the original text with New.
type Edit struct {
	Pos int    // start offset in the original text
	Len int    // length of the replaced span in the original text
	New string // replacement text
}

// End returns the end offset of e's span in the original text.
func (e Edit) End() int {
	return e.Pos + e.Len
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d,%d)→%q", e.Pos, e.End(), e.New)
}

// Apply applies edits to text in order and returns the result.
// If there are no edits, or the edits leave the text unchanged,
// Apply returns nil, false.
func Apply(text []byte, edits []Edit) ([]byte, bool) {
	if len(edits) == 0 {
		return nil, false
	}
	var b strings.Builder
	buf := splice(string(text), edits, &b)
	if buf == string(text) {
		return nil, false
	}
	return []byte(buf), true
}

// splice is the sequential fold behind Apply and Buffer.Bytes.
// The offset is the total growth of the buffer caused by the edits
// applied so far, all of which lie before the current edit.
func splice(text string, edits []Edit, b *strings.Builder) string {
	buf := text
	offset := 0
	for _, e := range edits {
		pos := e.Pos + offset
		if pos < 0 || e.Len < 0 || pos+e.Len > len(buf) {
			panic(fmt.Sprintf("edit %v out of range for %d-byte buffer (offset %d)", e, len(buf), offset))
		}
		b.Reset()
		b.Grow(len(buf) - e.Len + len(e.New))
		b.WriteString(buf[:pos])
		b.WriteString(e.New)
		b.WriteString(buf[pos+e.Len:])
		buf = b.String()
		offset += len(e.New) - e.Len
	}
	return buf
}

// A Buffer is a queue of edits to apply to a file text.
// Edits must be queued in ascending order of position.
type Buffer struct {
	old []byte
	q   []Edit
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{old: data}
}

// Insert queues the insertion of new at pos.
func (b *Buffer) Insert(pos int, new string) {
	b.Replace(pos, pos, new)
}

// Delete queues the deletion of old[start:end].
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Replace queues the replacement of old[start:end] with new.
func (b *Buffer) Replace(start, end int, new string) {
	if end < start || start < 0 || end > len(b.old) {
		panic("invalid edit position")
	}
	b.q = append(b.q, Edit{Pos: start, Len: end - start, New: new})
}

// Add queues e.
func (b *Buffer) Add(e Edit) {
	b.Replace(e.Pos, e.End(), e.New)
}

// Edits returns the queued edits.
func (b *Buffer) Edits() []Edit {
	return b.q
}

// Len reports the number of queued edits.
func (b *Buffer) Len() int {
	return len(b.q)
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return []byte(b.String())
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	var sb strings.Builder
	return splice(string(b.old), b.q, &sb)
}
