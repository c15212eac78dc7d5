package tperr

import (
	"errors"
	"fmt"
	"log/slog"
)

type Errors struct {
	errs []TypingError
}

func (r *Errors) With(err ...TypingError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

// WithErr adds err, classifying it as Unclassified if it is not a TypingError
func (r *Errors) WithErr(err error) *Errors {
	if err == nil {
		return r
	}
	var typingErr TypingError
	if errors.As(err, &typingErr) {
		return r.With(typingErr)
	}
	return r.With(New(Unclassified{From: err}))
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []TypingError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Err joins all the errors, or returns nil if there are none
func (r *Errors) Err() error {
	if !r.HasError() {
		return nil
	}
	errs := make([]error, 0, len(r.errs))
	for _, e := range r.errs {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
