// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imports

import (
	"strconv"
	"strings"
)

// printImport prints a default import declaration
// binding name to the module at path.
// Attributes, if not empty, are printed after the module path.
func printImport(name, path, attrs string) string {
	s := "import " + name + " from " + strconv.Quote(path)
	if attrs != "" {
		s += " " + attrs
	}
	return s + ";"
}

// printTypeImport prints a type-only import of the named specifiers.
func printTypeImport(specs []string, path string) string {
	return "import type { " + strings.Join(specs, ", ") + " } from " + strconv.Quote(path) + ";"
}
