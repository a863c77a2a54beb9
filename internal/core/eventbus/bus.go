// Package eventbus is an in-process publish/subscribe registry keyed by event kind
//
// Publish runs every handler registered for the event's kind concurrently and
// returns only after all of them finished. Failures are collected, not short circuited
package eventbus

import (
	"context"
	stderrs "errors"
	"fmt"
	"runtime/debug"
	"sync"
)

// Event is anything that can name its own kind
type Event[K comparable] interface {
	EventKind() K
}

// Handler reacts to one published event
type Handler[E any] func(ctx context.Context, ev E) error

// Bus routes events of type E to the handlers subscribed to E's kind
// the zero value is not usable; call New
type Bus[K comparable, E Event[K]] struct {
	mu       sync.RWMutex
	handlers map[K][]Handler[E]
}

// New returns an empty bus
func New[K comparable, E Event[K]]() *Bus[K, E] {
	return &Bus[K, E]{handlers: make(map[K][]Handler[E])}
}

// Subscribe appends h to the handlers of kind
// a nil handler is ignored
func (b *Bus[K, E]) Subscribe(kind K, h Handler[E]) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[kind] = append(b.handlers[kind], h)
	b.mu.Unlock()
}

// Handlers reports how many handlers are registered for kind
func (b *Bus[K, E]) Handlers(kind K) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind])
}

// Publish delivers ev to every handler of ev.EventKind() and waits for all of them
// with no handlers it is a no-op returning nil
// any handler failures come back as a *PublishError after every handler returned
func (b *Bus[K, E]) Publish(ctx context.Context, ev E) error {
	kind := ev.EventKind()

	b.mu.RLock()
	hs := b.handlers[kind]
	snapshot := make([]Handler[E], len(hs))
	copy(snapshot, hs)
	b.mu.RUnlock()

	if len(snapshot) == 0 {
		return nil
	}

	errs := make([]error, len(snapshot))
	var wg sync.WaitGroup
	wg.Add(len(snapshot))
	for i, h := range snapshot {
		go func(i int, h Handler[E]) {
			defer wg.Done()
			errs[i] = invoke(ctx, h, ev)
		}(i, h)
	}
	wg.Wait()

	var failed []HandlerError
	for i, err := range errs {
		if err != nil {
			failed = append(failed, HandlerError{Index: i, Err: err})
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &PublishError{Kind: fmt.Sprint(kind), Handlers: len(snapshot), Failures: failed}
}

// invoke runs h and turns a panic into an error
func invoke[E any](ctx context.Context, h Handler[E], ev E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return h(ctx, ev)
}

// HandlerError is the failure of a single handler
// Index is the handler's position in the subscription snapshot
type HandlerError struct {
	Index int
	Err   error
}

func (e HandlerError) Error() string { return fmt.Sprintf("handler %d: %v", e.Index, e.Err) }

func (e HandlerError) Unwrap() error { return e.Err }

// PublishError aggregates every handler failure of one Publish call
type PublishError struct {
	Kind     string
	Handlers int
	Failures []HandlerError
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("eventbus: %d of %d handlers failed for %s: %v",
		len(e.Failures), e.Handlers, e.Kind, e.joined())
}

// Unwrap exposes each handler failure to errors.Is and errors.As
func (e *PublishError) Unwrap() []error {
	out := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f
	}
	return out
}

func (e *PublishError) joined() error { return stderrs.Join(e.Unwrap()...) }

// PanicError is reported for a handler that panicked
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("handler panic: %v", e.Value) }
