// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imports

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rsc.io/lodashsplit/edit"
)

var rewriteTests = []struct {
	name string
	in   string
	out  string // "" means unchanged
}{
	{
		name: "basic",
		in:   "import { map, filter } from 'lodash';",
		out:  "\nimport map from 'lodash/map';\nimport filter from 'lodash/filter';",
	},
	{
		name: "surrounded",
		in:   "// header\nimport { a } from 'lodash';\nconst x = a(1);\n",
		out:  "// header\nimport a from 'lodash/a';\nconst x = a(1);\n",
	},
	{
		name: "order",
		in:   "x();\nimport { c, a, b } from 'lodash';\n",
		out:  "x();\nimport c from 'lodash/c';\nimport a from 'lodash/a';\nimport b from 'lodash/b';\n",
	},
	{
		name: "alias",
		in:   "x();\nimport { map as m } from 'lodash';\n",
		out:  "x();\nimport m from 'lodash/m';\n",
	},
	{
		name: "double quotes",
		in:   "x();\nimport { map } from \"lodash\";\n",
		out:  "x();\nimport map from 'lodash/map';\n",
	},
	{
		name: "no semicolon",
		in:   "x();\nimport { map } from 'lodash'\ny();\n",
		out:  "x();\nimport map from 'lodash/map';\ny();\n",
	},
	{
		name: "default and named",
		in:   "x();\nimport _, { map } from 'lodash';\n",
		out:  "x();\nimport _ from 'lodash';\nimport map from 'lodash/map';\n",
	},
	{
		name: "empty",
		in:   "a();\nimport {} from 'lodash';\nb();\n",
		out:  "a();\nb();\n",
	},
	{
		name: "multiline",
		in:   "a();\n\nimport {\n  map,\n  filter, // keep\n} from 'lodash';\n",
		out:  "a();\nimport map from 'lodash/map';\nimport filter from 'lodash/filter';\n",
	},
	{
		name: "trailing comment without semicolon",
		in:   "x();\nimport { map } from 'lodash' // keep me\ny();\n",
		out:  "x();\nimport map from 'lodash/map'; // keep me\ny();\n",
	},
	{
		name: "trailing comment",
		in:   "x();\nimport { map } from 'lodash'; /* keep me */\ny();\n",
		out:  "x();\nimport map from 'lodash/map'; /* keep me */\ny();\n",
	},
	{
		name: "type specifiers",
		in:   "x();\nimport { type Dictionary, map, type List as L } from 'lodash';\n",
		out:  "x();\nimport type { Dictionary, List as L } from 'lodash';\nimport map from 'lodash/map';\n",
	},
	{
		name: "only type specifiers",
		in:   "x();\nimport { type Dictionary } from 'lodash';\n",
		out:  "x();\nimport type { Dictionary } from 'lodash';\n",
	},
	{
		name: "attributes",
		in:   "x();\nimport { map, filter } from 'lodash' with { type: 'js' };\n",
		out:  "x();\nimport map from 'lodash/map' with { type: 'js' };\nimport filter from 'lodash/filter' with { type: 'js' };\n",
	},
	{name: "default only", in: "import _ from 'lodash';\n_.map([], f);\n"},
	{name: "namespace", in: "import * as _ from 'lodash';\n"},
	{name: "side effect", in: "import 'lodash';\n"},
	{name: "other module", in: "import { map } from 'lodash-es';\nimport { filter } from 'rxjs/operators';\n"},
	{name: "type only", in: "import type { Dictionary } from 'lodash';\n"},
	{name: "nested require", in: "function f() {\n  const { map } = require('lodash');\n}\n"},
	{name: "no imports", in: "export const x = 1;\n"},
}

func TestRewrite(t *testing.T) {
	ctx := context.Background()
	for _, tt := range rewriteTests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Rewrite(ctx, "x.ts", []byte(tt.in), DefaultModule)
			if err != nil {
				t.Fatal(err)
			}
			if tt.out == "" {
				if out != nil {
					t.Fatalf("Rewrite changed file:\n%s", out)
				}
				return
			}
			if string(out) != tt.out {
				t.Fatalf("Rewrite:\nhave %q\nwant %q", out, tt.out)
			}

			// A second pass finds nothing left to do.
			again, err := Rewrite(ctx, "x.ts", out, DefaultModule)
			if err != nil {
				t.Fatal(err)
			}
			if again != nil {
				t.Errorf("second Rewrite changed file again:\n%s", again)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	src := []byte("import { map, filter } from 'lodash';")
	tree, err := Parse(context.Background(), "x.ts", src)
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	have := Match(tree.RootNode(), src, DefaultModule)
	want := []edit.Edit{{
		Pos: 0,
		Len: len(src),
		New: "\nimport map from 'lodash/map';\nimport filter from 'lodash/filter';",
	}}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("Match mismatch (-want +have):\n%s", diff)
	}
}

// The second import must be replaced where it was,
// even though the first replacement grew the file.
func TestMatchOffsets(t *testing.T) {
	const (
		head   = "/* head */\n"
		first  = "import { a, b } from 'lodash';"
		middle = "\nconst keep = 1;"
		second = "import { c, d, e } from 'lodash';"
		tail   = "\nexport default keep;\n"
	)
	src := head + first + middle + "\n" + second + tail
	tree, err := Parse(context.Background(), "x.ts", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	edits := Match(tree.RootNode(), []byte(src), DefaultModule)
	if len(edits) != 2 {
		t.Fatalf("Match found %d edits, want 2: %v", len(edits), edits)
	}
	if got, want := src[edits[1].Pos:edits[1].End()], "\n"+second; got != want {
		t.Errorf("second edit covers %q, want %q", got, want)
	}

	out, ok := edit.Apply([]byte(src), edits)
	if !ok {
		t.Fatal("Apply reported no change")
	}
	want := head +
		"import a from 'lodash/a';\nimport b from 'lodash/b';" +
		middle +
		"\nimport c from 'lodash/c';\nimport d from 'lodash/d';\nimport e from 'lodash/e';" +
		tail
	if string(out) != want {
		t.Errorf("Apply:\nhave %q\nwant %q", out, want)
	}
	if !strings.HasPrefix(string(out), head) || !strings.HasSuffix(string(out), tail) {
		t.Errorf("text outside the imports changed")
	}
}

func TestRewriteModule(t *testing.T) {
	in := "import { map } from 'lodash-es';\nimport { filter } from 'lodash';\n"
	out, err := Rewrite(context.Background(), "x.ts", []byte(in), "lodash-es")
	if err != nil {
		t.Fatal(err)
	}
	want := "\nimport map from 'lodash-es/map';\nimport { filter } from 'lodash';\n"
	if string(out) != want {
		t.Errorf("Rewrite:\nhave %q\nwant %q", out, want)
	}
}

func TestRewriteSyntaxError(t *testing.T) {
	_, err := Rewrite(context.Background(), "x.ts", []byte("import { map from 'lodash';\n"), DefaultModule)
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Rewrite error = %v, want *SyntaxError", err)
	}
	if serr.Line != 1 {
		t.Errorf("syntax error at line %d, want 1", serr.Line)
	}
}

func TestReplacement(t *testing.T) {
	tests := []struct {
		g    Group
		want string
	}{
		{Group{}, ""},
		{Group{Members: []string{"map"}}, "\nimport map from 'lodash/map';"},
		{Group{Default: "_"}, "\nimport _ from 'lodash';"},
		{Group{Types: []string{"List"}}, "\nimport type { List } from 'lodash';"},
		{Group{Members: []string{"map"}, Attributes: "with { type: \"js\" }"}, "\nimport map from 'lodash/map' with { type: 'js' };"},
	}
	for _, tt := range tests {
		if have := Replacement(tt.g, "lodash"); have != tt.want {
			t.Errorf("Replacement(%+v) = %q, want %q", tt.g, have, tt.want)
		}
	}
}

func TestLanguage(t *testing.T) {
	for _, name := range []string{"a.ts", "b.tsx", "c.js", "d.mjs"} {
		if Language(name) == nil {
			t.Errorf("Language(%q) = nil", name)
		}
	}
	src := []byte("const el = <div>{x}</div>;\nimport { map } from 'lodash';\n")
	out, err := Rewrite(context.Background(), "view.tsx", src, DefaultModule)
	if err != nil {
		t.Fatal(err)
	}
	want := "const el = <div>{x}</div>;\nimport map from 'lodash/map';\n"
	if string(out) != want {
		t.Errorf("Rewrite tsx:\nhave %q\nwant %q", out, want)
	}
}
