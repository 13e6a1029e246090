package cmd

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/internal/driver"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [files...]",
	Short: "Lex Joos source files and print the resulting tokens",
	Run: func(cmd *cobra.Command, args []string) {
		result, ok := runSession(cmd, driver.StageLex, args)
		for _, toks := range result.Tokens {
			for _, tok := range toks {
				fmt.Printf("%-14s %q\n", tok.Type, tok.Literal)
			}
		}
		if !ok {
			os.Exit(exitCompileError)
		}
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
}
