package cmd

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/internal/driver"
	"github.com/joosc/compiler/internal/dump"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse Joos source files and pretty-print the resulting AST",
	Run: func(cmd *cobra.Command, args []string) {
		result, ok := runSession(cmd, driver.StageParse, args)
		if result.Program != nil {
			fmt.Println(dump.Pretty(result.Program))
		}
		if !ok {
			os.Exit(exitCompileError)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
