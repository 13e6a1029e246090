package cmd

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/internal/driver"
	"github.com/spf13/cobra"
)

// exitCompileError is spec.md §6's ERROR exit code, ported from
// original_source/joosc_main.cpp's `const int ERROR = 42;`.
const exitCompileError = 42

// resolveStage applies --until if given, falling back to the loaded
// joosc.yaml's Until setting.
func resolveStage(cmd *cobra.Command, fallback driver.Stage) driver.Stage {
	name, _ := cmd.Flags().GetString("until")
	if name == "" {
		name = cfg.Until
	}
	if name == "" {
		return fallback
	}
	stage, ok := driver.ParseStage(name)
	if !ok {
		exitWithError("unrecognized --until stage %q", name)
	}
	return stage
}

// resolveColor applies --color if explicitly set, falling back to the
// loaded joosc.yaml's Color setting.
func resolveColor(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("color") {
		v, _ := cmd.Flags().GetBool("color")
		return v
	}
	return cfg.Color
}

// runSession opens and drives paths through stage, printing whatever
// syntax errors and diagnostics it collected along the way, and
// returns the pipeline Result plus whether the compile succeeded.
func runSession(cmd *cobra.Command, stage driver.Stage, paths []string) (driver.Result, bool) {
	if len(paths) == 0 {
		exitWithError("no input files given")
	}

	s := driver.NewSession()
	result, ok, err := s.Run(stage, paths)
	if err != nil {
		exitWithError("%v", err)
	}

	for _, synErr := range s.SyntaxErrors {
		fmt.Fprintln(os.Stderr, synErr)
	}
	if s.Diags.Len() > 0 {
		color := resolveColor(cmd)
		fmt.Fprint(os.Stderr, s.Diags.Format(s.FS, color))
	}
	return result, ok
}
