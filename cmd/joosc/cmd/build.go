package cmd

import (
	"os"

	"github.com/joosc/compiler/internal/driver"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [files...]",
	Short: "Compile Joos source files, exiting 0 on success or 42 on any error",
	Run: func(cmd *cobra.Command, args []string) {
		stage := resolveStage(cmd, driver.StageAll)
		_, ok := runSession(cmd, stage, args)
		if !ok {
			os.Exit(exitCompileError)
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
