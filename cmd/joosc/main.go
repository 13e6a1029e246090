// Command joosc compiles Joos source files down to a lowered IR; it
// does not emit x86 assembly.
package main

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/cmd/joosc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
