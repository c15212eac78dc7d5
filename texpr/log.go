package texpr

import (
	"log/slog"
)

// Slog wraps an Expr as a slog.LogValuer to not render expressions
// unless they definitely need to be logged
func Slog(expr Expr) slog.LogValuer {
	return exprLogValuer{expr}
}

type exprLogValuer struct{ Expr }

func (l exprLogValuer) LogValue() slog.Value {
	if l.Expr == nil {
		return slog.StringValue("None")
	}
	return slog.StringValue(l.Expr.String())
}
