// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Lodashsplit splits aggregate lodash imports in a TypeScript project.
//
// Usage:
//
//	lodashsplit [flags] [dir]
//
// Lodashsplit rewrites every import of named members from the aggregate
// module in the project's source tree into one default import per member:
//
//	import { map, filter } from 'lodash';
//
// becomes
//
//	import map from 'lodash/map';
//	import filter from 'lodash/filter';
//
// Each member is imported from the submodule named by its local binding,
// so an aliased member is imported under, and from, its alias.
// A default binding in the same statement is kept as its own import,
// and members marked type are kept in one import type statement from the
// aggregate module. Import attributes, as in with { type: 'js' }, are
// repeated on every new import.
// Default-only, namespace, side-effect and type-only imports are left alone,
// as is every import of another module.
// Everything the rewrite does not touch, including comments and formatting
// outside the rewritten statements, is preserved byte for byte. A comment
// trailing an import on the same line stays where it was.
//
// The replacement for a statement starts with a newline and takes the place
// of the statement together with the whitespace before it, so an import
// that was on its own line stays on its own lines.
// A statement with an empty member list, such as
//
//	import {} from 'lodash';
//
// is deleted along with the line it was on.
//
// Lodashsplit also sets compilerOptions.allowSyntheticDefaultImports
// to true in tsconfig.json, if it is not set already, so that the
// default imports type-check. The file is rewritten with two-space
// indentation and its keys in their original order.
//
// By default, lodashsplit writes changes back to the disk.
// The --diff flag causes lodashsplit to print a diff of the intended changes
// instead. If any file fails to parse, lodashsplit reports every such
// file and writes nothing.
//
// # Flags
//
//	--dir dir         project root (default "."); a dir argument overrides it
//	--src dir         source tree, relative to the project root (default "src")
//	--module name     aggregate module (default "lodash")
//	--ext exts        comma-separated file extensions (default ".ts")
//	--tsconfig file   project configuration (default "tsconfig.json")
//	--skip-tsconfig   leave the project configuration alone
//	--diff            print a diff instead of writing files
//	--jobs n          files to process in parallel
//	--config file     read any of the above from a YAML, JSON or TOML file
//	-v, --verbose     log each rewritten file
//
// Every flag may also be set in the environment as LODASHSPLIT_<FLAG>,
// with dashes replaced by underscores, as in LODASHSPLIT_SKIP_TSCONFIG=true.
//
// Files with the extensions .tsx, .js, .jsx, .mjs and .cjs are parsed with
// the matching grammar when they are selected with --ext. Directories named
// node_modules and directories whose names begin with a dot are skipped.
package main
