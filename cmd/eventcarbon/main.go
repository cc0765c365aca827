// Command eventcarbon estimates the carbon footprint of events.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/eventcarbon/internal/cli"
	"github.com/rshade/eventcarbon/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command tree with args and returns the process exit code.
func run(args []string) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
