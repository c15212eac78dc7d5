package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bojiang/typing-utils/internal/log"
	"github.com/bojiang/typing-utils/tperr"
	"github.com/bojiang/typing-utils/typing"
	"github.com/bojiang/typing-utils/util"
	"github.com/logrusorgru/aurora/v4"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	logLevel    int
	logSections []string
)

// addLogFlags registers the logging flags shared by every subcommand
func addLogFlags(c *cobra.Command) {
	c.Flags().IntVarP(&logLevel, "log-level", "l", int(slog.LevelError), "log level")
	c.Flags().StringSliceVar(&logSections, "log-sections", nil, "only log records below warn from these sections, like typing.subtype")
}

func setupLogging() {
	log.SetLevel(slog.Level(logLevel))
	if len(logSections) > 0 {
		log.EnableSections(logSections...)
	}
}

// printer writes command output, colouring it when it goes to a terminal
type printer struct {
	w      io.Writer
	colors bool
}

func newPrinter(w io.Writer) printer {
	f, ok := w.(*os.File)
	colors := ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	return printer{w: w, colors: colors}
}

func (p printer) colorize(s string, color aurora.Color) string {
	if !p.colors {
		return s
	}
	return aurora.Colorize(s, color).String()
}

func (p printer) println(a ...any) {
	_, _ = fmt.Fprintln(p.w, a...)
}

func (p printer) ternary(t typing.Ternary) string {
	switch t {
	case typing.True:
		return p.colorize(t.String(), aurora.GreenFg|aurora.BrightFg)
	case typing.False:
		return p.colorize(t.String(), aurora.RedFg|aurora.BrightFg)
	default:
		return p.colorize(t.String(), aurora.YellowFg|aurora.BrightFg)
	}
}

func (p printer) ok() string   { return p.colorize("ok  ", aurora.GreenFg) }
func (p printer) fail() string { return p.colorize("FAIL", aurora.RedFg|aurora.BrightFg|aurora.BoldFm) }

func (p printer) faint(s string) string {
	return p.colorize(s, aurora.FaintFm)
}

// describeError renders err with its error code, and a pointer into the
// source for syntax errors
func describeError(err error) string {
	var typingErr tperr.TypingError
	if !errors.As(err, &typingErr) {
		return err.Error()
	}
	msg := tperr.FormatWithCode(typingErr)
	var syntax tperr.Syntax
	if errors.As(err, &syntax) {
		msg += "\n" + syntax.Pointer()
	}
	return msg
}

// splitErrors undoes errors.Join
func splitErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func describeErrors(err error) string {
	described := util.Map(splitErrors(err), func(e error) error {
		return errors.New(describeError(e))
	})
	return util.JoinErrorsWith("  ", described, "\n")
}
