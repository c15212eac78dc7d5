package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bojiang/typing-utils/suite"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check ./folder|suite.yaml...",
	Short:        "Run YAML test suites of subtype and normalisation cases",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var verbose bool

func init() {
	addLogFlags(CheckCmd)
	CheckCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print passing cases too")
}

// suiteFiles expands directories in targets into the YAML files they contain
func suiteFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		stat, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("could not stat target: %w", err)
		}
		if !stat.IsDir() {
			files = append(files, target)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(target, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	return files, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	setupLogging()
	files, err := suiteFiles(args)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout())
	var total, failed int
	for _, file := range files {
		s, err := suite.LoadFile(file)
		if err != nil {
			return fmt.Errorf("could not load suite %s:\n%s", file, describeErrors(err))
		}
		results, errs := s.Run()
		if results == nil && errs.HasError() {
			return fmt.Errorf("could not run suite %s:\n%s", file, describeErrors(errs.Err()))
		}
		for _, res := range results {
			total++
			if res.Passed {
				if verbose {
					p.println(p.ok(), s.Name, res.Case)
				}
				continue
			}
			failed++
			if res.Err != nil {
				p.println(p.fail(), s.Name, res.Case, "\n"+describeError(res.Err))
				continue
			}
			p.println(p.fail(), s.Name, res)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, total)
	}
	p.println(p.ok(), fmt.Sprintf("%d cases passed", total))
	return nil
}
