package cmd

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/internal/driver"
	"github.com/joosc/compiler/internal/dump"
	"github.com/spf13/cobra"
)

var dumpIRQuery string

var dumpIRCmd = &cobra.Command{
	Use:   "dump-ir [files...]",
	Short: "Compile Joos source files to IR and dump the resulting Program as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		result, ok := runSession(cmd, driver.StageGenIR, args)
		if !ok {
			os.Exit(exitCompileError)
		}

		doc, err := dump.IR(result.IR)
		if err != nil {
			exitWithError("%v", err)
		}
		if dumpIRQuery != "" {
			fmt.Println(dump.Query(doc, dumpIRQuery))
		} else {
			fmt.Println(doc)
		}
	},
}

func init() {
	dumpIRCmd.Flags().StringVar(&dumpIRQuery, "query", "", `gjson path expression to evaluate, e.g. "units.0.methods.0.ops.#.op"`)
	rootCmd.AddCommand(dumpIRCmd)
}
