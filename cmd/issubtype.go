package cmd

import (
	"fmt"

	"github.com/bojiang/typing-utils/parser"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/typing"
	"github.com/spf13/cobra"
)

var IsSubtypeCmd = &cobra.Command{
	Use:          "issubtype LEFT RIGHT",
	Short:        "Check whether LEFT is a subtype of RIGHT",
	Long:         "Check whether LEFT is a subtype of RIGHT, printing True, False or Unknown.\nNames are resolved in the --ref and --refs forward references first.",
	RunE:         runIsSubtype,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var depthLimit int

func init() {
	addLogFlags(IsSubtypeCmd)
	addNameFlags(IsSubtypeCmd)
	IsSubtypeCmd.Flags().IntVar(&depthLimit, "depth-limit", 0, "maximum recursion depth of the check, 0 for the default")
}

func runIsSubtype(cmd *cobra.Command, args []string) error {
	setupLogging()
	scope, env, err := loadNames()
	if err != nil {
		return fmt.Errorf("could not load names:\n%s", describeErrors(err))
	}
	names := texpr.Layered(env, scope)

	exprs := make([]texpr.Expr, 0, len(args))
	for _, src := range args {
		e, err := parser.ParseExpr(src, names)
		if err != nil {
			return fmt.Errorf("could not parse %q:\n%s", src, describeError(err))
		}
		exprs = append(exprs, e)
	}

	checker := typing.NewChecker(typing.WithScope(scope), typing.WithDepthLimit(depthLimit))
	res, err := checker.IsSubtype(exprs[0], exprs[1], env)
	if err != nil {
		return fmt.Errorf("could not check %s <: %s:\n%s", args[0], args[1], describeError(err))
	}
	p := newPrinter(cmd.OutOrStdout())
	p.println(p.ternary(res))
	return nil
}
