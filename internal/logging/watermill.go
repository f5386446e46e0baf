package logging

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
)

var _ watermill.LoggerAdapter = (*WatermillAdapter)(nil)

// WatermillAdapter lets watermill publishers and subscribers log through
// Logger.
type WatermillAdapter struct {
	base Logger
}

func NewWatermillAdapter(l Logger) *WatermillAdapter {
	return &WatermillAdapter{base: l}
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.withFields(fields).Error(context.Background(), msg, "error", err)
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.withFields(fields).Info(context.Background(), msg)
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.withFields(fields).Debug(context.Background(), msg)
}

// Trace is folded into Debug.
func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.withFields(fields).Debug(context.Background(), msg)
}

func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillAdapter{base: a.withFields(fields)}
}

func (a *WatermillAdapter) withFields(fields watermill.LogFields) Logger {
	if len(fields) == 0 {
		return a.base
	}
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return a.base.With(args...)
}
