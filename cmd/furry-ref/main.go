// Command furry-ref replays edit scripts through an undo/redo history.
package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/furry-ref/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
