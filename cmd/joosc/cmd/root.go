package cmd

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cfg is the joosc.yaml project configuration, loaded once in
// rootCmd's PersistentPreRunE so every subcommand sees the same
// settings merged with whatever flags it was given.
var cfg config.Config

var configPath string

var rootCmd = &cobra.Command{
	Use:   "joosc",
	Short: "A static compiler for Joos, a teaching subset of Java",
	Long: `joosc compiles Joos source files down to a lowered IR; it does
not emit x86 assembly.

Joos is a small, statically-typed subset of Java used to teach
compiler construction. joosc runs the same staged pipeline a real
compiler does: lexing, parsing, weeding, type checking, dataflow
analysis, and IR generation, stopping early at any stage with
--until for inspection.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "joosc.yaml", "project config file")
	rootCmd.PersistentFlags().String("until", "", "stop the pipeline after this stage (open-files, lex, parse, weed, type-check, gen-ir, all); defaults to the config file's until, or all")
	rootCmd.PersistentFlags().Bool("color", false, "force-enable colored diagnostic output (default: the config file's color setting)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
