package cmd

import (
	"fmt"

	"github.com/bojiang/typing-utils/parser"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/typing"
	"github.com/spf13/cobra"
)

var NormalizeCmd = &cobra.Command{
	Use:          "normalize EXPR...",
	Short:        "Print the normal form of type expressions",
	RunE:         runNormalize,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	addLogFlags(NormalizeCmd)
	addNameFlags(NormalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	setupLogging()
	scope, env, err := loadNames()
	if err != nil {
		return fmt.Errorf("could not load names:\n%s", describeErrors(err))
	}
	checker := typing.NewChecker(typing.WithScope(scope))
	names := texpr.Layered(env, scope)

	p := newPrinter(cmd.OutOrStdout())
	for _, src := range args {
		e, err := parser.ParseExpr(src, names)
		if err != nil {
			return fmt.Errorf("could not parse %q:\n%s", src, describeError(err))
		}
		t, err := checker.Normalize(e)
		if err != nil {
			return fmt.Errorf("could not normalize %q:\n%s", src, describeError(err))
		}
		p.println(src, p.faint("=>"), t)
	}
	return nil
}
