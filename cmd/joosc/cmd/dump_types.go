package cmd

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/internal/driver"
	"github.com/joosc/compiler/internal/dump"
	"github.com/spf13/cobra"
)

var dumpTypesQuery string

var dumpTypesCmd = &cobra.Command{
	Use:   "dump-types [files...]",
	Short: "Type-check Joos source files and dump the resulting TypeInfoMap as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		result, ok := runSession(cmd, driver.StageTypeCheck, args)
		if !ok {
			os.Exit(exitCompileError)
		}

		doc, err := dump.TypeInfo(result.Types)
		if err != nil {
			exitWithError("%v", err)
		}
		if dumpTypesQuery != "" {
			fmt.Println(dump.Query(doc, dumpTypesQuery))
		} else {
			fmt.Println(doc)
		}
	},
}

func init() {
	dumpTypesCmd.Flags().StringVar(&dumpTypesQuery, "query", "", "gjson path expression to evaluate against the dumped JSON instead of printing the whole document")
	rootCmd.AddCommand(dumpTypesCmd)
}
