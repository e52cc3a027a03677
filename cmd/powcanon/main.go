// Command powcanon normalizes power atoms and lowers them to geometric-mean
// cone programs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/powcanon/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
