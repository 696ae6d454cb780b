// Package mocks provides an in-process otel.Otel for tests. Spans are not exported,
// but the names of opened scopes and the errors traced on them are kept so tests can
// assert on them.
package mocks

import (
	"context"
	"sync"

	"roombook/infras/otel"
)

type Recorder struct {
	mu     sync.Mutex
	scopes []string
	errors []error
}

func NewOtel() *Recorder {
	return &Recorder{}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	r.mu.Lock()
	r.scopes = append(r.scopes, name)
	r.mu.Unlock()

	return ctx, &scope{recorder: r}
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Scopes returns the names of every scope opened so far, in order.
func (r *Recorder) Scopes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.scopes...)
}

// Errors returns every error traced so far.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	s.recorder.mu.Lock()
	s.recorder.errors = append(s.recorder.errors, err)
	s.recorder.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(string) {}

func (s *scope) SetAttribute(string, any) {}

func (s *scope) SetAttributes(map[string]any) {}
