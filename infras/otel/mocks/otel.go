// Package mocks provides a tracer that records nothing, for unit tests.
package mocks

import (
	"context"

	"hotelos/infras/otel"
)

type noopOtel struct{}

func NewOtel() otel.Otel { return noopOtel{} }

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (noopOtel) Shutdown(context.Context) error { return nil }
