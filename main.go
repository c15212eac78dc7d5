//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/bojiang/typing-utils/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "typing-utils [subcommand]",
	Short:        "typing-utils\n normalise type annotations and check whether one is a subtype of another",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.NormalizeCmd)
	rootCmd.AddCommand(cmd.IsSubtypeCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
}
