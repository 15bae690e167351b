// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tsconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnableSyntheticDefaultImports(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string // "" means no write
	}{
		{
			name: "missing compilerOptions",
			in:   `{"include": ["src"]}`,
			out:  "{\n  \"include\": [\n    \"src\"\n  ],\n  \"compilerOptions\": {\n    \"allowSyntheticDefaultImports\": true\n  }\n}\n",
		},
		{
			name: "missing flag keeps key order",
			in:   `{"compilerOptions": {"target": "es2017", "strict": true}, "exclude": []}`,
			out:  "{\n  \"compilerOptions\": {\n    \"target\": \"es2017\",\n    \"strict\": true,\n    \"allowSyntheticDefaultImports\": true\n  },\n  \"exclude\": []\n}\n",
		},
		{
			name: "false flag",
			in:   `{"compilerOptions": {"allowSyntheticDefaultImports": false, "module": "esnext"}}`,
			out:  "{\n  \"compilerOptions\": {\n    \"allowSyntheticDefaultImports\": true,\n    \"module\": \"esnext\"\n  }\n}\n",
		},
		{
			name: "null compilerOptions",
			in:   `{"compilerOptions": null}`,
			out:  "{\n  \"compilerOptions\": {\n    \"allowSyntheticDefaultImports\": true\n  }\n}\n",
		},
		{
			name: "html characters kept",
			in:   `{"compilerOptions": {"paths": {"@a/*": ["src/<x>&y"]}}, "include": ["a&b"]}`,
			out:  "{\n  \"compilerOptions\": {\n    \"paths\": {\n      \"@a/*\": [\n        \"src/<x>&y\"\n      ]\n    },\n    \"allowSyntheticDefaultImports\": true\n  },\n  \"include\": [\n    \"a&b\"\n  ]\n}\n",
		},
		{
			name: "escapes kept",
			in:   `{"include": ["a\u0026b"]}`,
			out:  "{\n  \"include\": [\n    \"a\\u0026b\"\n  ],\n  \"compilerOptions\": {\n    \"allowSyntheticDefaultImports\": true\n  }\n}\n",
		},
		{
			name: "already set",
			in:   `{"compilerOptions": {"allowSyntheticDefaultImports": true}}`,
		},
		{
			name: "truthy",
			in:   `{"compilerOptions": {"allowSyntheticDefaultImports": 1}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed, err := EnableSyntheticDefaultImports([]byte(tt.in))
			require.NoError(t, err)
			if tt.out == "" {
				require.False(t, changed)
				require.Nil(t, out)
				return
			}
			require.True(t, changed)
			require.Equal(t, tt.out, string(out))

			again, changed, err := EnableSyntheticDefaultImports(out)
			require.NoError(t, err)
			require.False(t, changed, "second pass rewrote %s", again)
		})
	}
}

func TestEnableSyntheticDefaultImportsErrors(t *testing.T) {
	for _, in := range []string{``, `[]`, `{"compilerOptions": `, `{"compilerOptions": 3}`} {
		_, _, err := EnableSyntheticDefaultImports([]byte(in))
		require.Error(t, err, "input %q", in)
	}
}
