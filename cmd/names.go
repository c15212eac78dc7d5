package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bojiang/typing-utils/suite"
	"github.com/bojiang/typing-utils/texpr"
	"github.com/bojiang/typing-utils/typing"
	"github.com/bojiang/typing-utils/util"
	"github.com/spf13/cobra"
)

var (
	refsPath string
	refFlags []string
)

func addNameFlags(c *cobra.Command) {
	c.Flags().StringVarP(&refsPath, "refs", "r", "", "YAML file declaring classes, typevars and refs")
	c.Flags().StringArrayVar(&refFlags, "ref", nil, "forward reference as NAME=EXPR, may be repeated")
}

// loadNames builds the scope and forward reference environment that
// expressions given on the command line are resolved in
func loadNames() (texpr.Scope, typing.Env, error) {
	decls := &suite.Declarations{}
	if refsPath != "" {
		f, err := os.Open(refsPath)
		if err != nil {
			return texpr.Scope{}, typing.Env{}, fmt.Errorf("could not open refs file: %w", err)
		}
		defer f.Close()
		decls, err = suite.LoadDeclarations(f)
		if err != nil {
			return texpr.Scope{}, typing.Env{}, fmt.Errorf("could not load %s: %w", refsPath, err)
		}
	}
	for _, flag := range refFlags {
		name, expr := util.StringTakeUntil(flag, '=')
		name, expr = strings.TrimSpace(name), strings.TrimSpace(expr)
		if name == "" || expr == "" {
			return texpr.Scope{}, typing.Env{}, fmt.Errorf("invalid --ref %q, expected NAME=EXPR", flag)
		}
		if decls.Refs == nil {
			decls.Refs = map[string]string{}
		}
		decls.Refs[name] = expr
	}

	scope, err := decls.Scope()
	if err != nil {
		return texpr.Scope{}, typing.Env{}, err
	}
	env, err := decls.Env(scope)
	if err != nil {
		return texpr.Scope{}, typing.Env{}, err
	}
	return scope, env, nil
}
