// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tsconfig edits a TypeScript project configuration file.
package tsconfig

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultFile is the conventional name of the project configuration file.
const DefaultFile = "tsconfig.json"

const (
	compilerOptions = "compilerOptions"
	syntheticFlag   = "allowSyntheticDefaultImports"
)

type object = orderedmap.OrderedMap[string, json.RawMessage]

// EnableSyntheticDefaultImports sets compilerOptions.allowSyntheticDefaultImports
// to true in the JSON configuration data. If the flag is already set to a
// truthy value it returns nil, false. Otherwise it returns the rewritten
// configuration, indented by two spaces, and true.
//
// Keys keep their original order. A missing compilerOptions object is created.
func EnableSyntheticDefaultImports(data []byte) ([]byte, bool, error) {
	cfg, err := parseObject(data)
	if err != nil {
		return nil, false, err
	}

	opts := orderedmap.New[string, json.RawMessage]()
	if raw, ok := cfg.Get(compilerOptions); ok && !isNull(raw) {
		opts, err = parseObject(raw)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", compilerOptions, err)
		}
	}
	if raw, ok := opts.Get(syntheticFlag); ok && truthy(raw) {
		return nil, false, nil
	}

	opts.Set(syntheticFlag, json.RawMessage("true"))
	rawOpts, err := encodeObject(opts)
	if err != nil {
		return nil, false, err
	}
	cfg.Set(compilerOptions, rawOpts)

	compact, err := encodeObject(cfg)
	if err != nil {
		return nil, false, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, false, err
	}
	out.WriteByte('\n')
	return out.Bytes(), true, nil
}

// encodeObject encodes obj compactly, in key order. Values are copied
// as written, so strings keep their original escaping; in particular
// < > & are not rewritten as \u003c \u003e \u0026 the way json.Marshal does.
func encodeObject(obj *object) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if pair != obj.Oldest() {
			buf.WriteByte(',')
		}
		if err := enc.Encode(pair.Key); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode's newline
		buf.WriteByte(':')
		if err := json.Compact(&buf, pair.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", pair.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func parseObject(data []byte) (*object, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("invalid configuration: not a JSON object")
	}
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	obj := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// truthy reports whether the JSON value is truthy in the JavaScript sense.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	}
	return true
}
