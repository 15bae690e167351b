// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rsc.io/lodashsplit/imports"
	"rsc.io/lodashsplit/refactor"
	"rsc.io/lodashsplit/tsconfig"
)

const usageLine = "lodashsplit [flags] [dir]"

func main() {
	log.SetPrefix("lodashsplit: ")
	log.SetFlags(0)

	err := run(context.Background(), afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		var u *errUsage
		if errors.As(err, &u) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// run executes the command line args against the project tree in fsys.
func run(ctx context.Context, fsys afero.Fs, args []string, stdout, stderr io.Writer) error {
	cmd := newCommand(fsys, stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newCommand(fsys afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Split aggregate lodash imports into per-member imports",
		Long: `Lodashsplit rewrites imports of named members from an aggregate module,

	import { map, filter } from 'lodash';

into one default import per member,

	import map from 'lodash/map';
	import filter from 'lodash/filter';

and enables compilerOptions.allowSyntheticDefaultImports in tsconfig.json.

Every flag may also be set by a LODASHSPLIT_<FLAG> environment variable
or by a key in the file named by --config.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return newErrUsage("%s", usageLine)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v); err != nil {
				return err
			}
			dir := v.GetString("dir")
			if len(args) == 1 {
				dir = args[0]
			}
			return lodashsplit(cmd.Context(), fsys, v, dir, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newErrUsage("%v", err)
	})

	flags := cmd.Flags()
	flags.String("config", "", "read options from `file` (YAML, JSON or TOML)")
	flags.String("dir", ".", "project root `directory`")
	flags.String("src", "src", "source tree to rewrite, relative to the project root")
	flags.String("module", imports.DefaultModule, "aggregate `module` whose named imports are split")
	flags.StringSlice("ext", refactor.DefaultExts, "file `extensions` to rewrite")
	flags.String("tsconfig", tsconfig.DefaultFile, "project configuration `file`, relative to the project root")
	flags.Bool("skip-tsconfig", false, "do not edit the project configuration")
	flags.Bool("diff", false, "show diff instead of writing files")
	flags.Int("jobs", 0, "files to process in parallel (default GOMAXPROCS)")
	flags.BoolP("verbose", "v", false, "log each rewritten file")

	v.SetEnvPrefix("LODASHSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return cmd
}

func loadConfig(v *viper.Viper) error {
	file := v.GetString("config")
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func lodashsplit(ctx context.Context, fsys afero.Fs, v *viper.Viper, dir string, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, v.GetBool("verbose"))
	defer logger.Sync()

	r, err := refactor.New(fsys, dir)
	if err != nil {
		return err
	}
	r.Module = v.GetString("module")
	r.Src = v.GetString("src")
	r.Exts = splitList(v.GetStringSlice("ext"))
	r.TSConfig = v.GetString("tsconfig")
	if v.GetBool("skip-tsconfig") {
		r.TSConfig = ""
	}
	r.Jobs = v.GetInt("jobs")
	r.ShowDiff = v.GetBool("diff")
	r.Color = stdout == io.Writer(os.Stdout) && !color.NoColor
	r.Stdout = stdout
	r.Stderr = stderr
	r.Log = logger

	if r.Module == "" {
		return newErrUsage("--module must not be empty")
	}
	logger.Debug("starting",
		zap.String("dir", r.Dir()),
		zap.String("module", r.Module),
		zap.Strings("ext", r.Exts))
	return r.Run(ctx)
}

// splitList splits each element of list at commas and drops empty
// entries. Viper splits an environment value at spaces only,
// so LODASHSPLIT_EXT=.ts,.tsx arrives as a single element.
func splitList(list []string) []string {
	var out []string
	for _, s := range list {
		for _, f := range strings.Split(s, ",") {
			if f = strings.TrimSpace(f); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}

// newLogger returns a console logger writing to w. It logs warnings
// and errors only, unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}
