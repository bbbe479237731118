// Package commands maps snake_case command names to the bound APIs so that
// anything speaking JSON, such as gorgonctl, can drive the same surface the
// frontend uses.
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// Handler decodes its JSON arguments, runs one command and returns a value to encode.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Registry is immutable once built and safe for concurrent Invoke calls.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Register adds h under name. Registering a name twice is a programming error.
func (r *Registry) Register(name string, h Handler) {
	if _, dup := r.handlers[name]; dup {
		panic(fmt.Sprintf("commands: %q registered twice", name))
	}
	r.handlers[name] = h
}

// Names lists registered commands alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named command with raw JSON arguments.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, apperrors.Customf("unknown command '%s'", name)
	}
	return h(ctx, args)
}

// Response is the wire envelope: exactly one of Result or Error is set.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Dispatch invokes name and folds the outcome into a Response. A nil result
// encodes as JSON null.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) Response {
	result, err := r.Invoke(ctx, name, args)
	if err != nil {
		return Response{Error: apperrors.Message(err)}
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return Response{Error: apperrors.Message(apperrors.Serialization(err))}
	}
	return Response{Result: payload}
}

// decodeArgs fills dst from raw, treating empty input as {} and failing when
// any of the required keys is absent or null.
func decodeArgs(raw json.RawMessage, dst any, required ...string) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return apperrors.Serialization(err)
	}
	for _, key := range required {
		v, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return apperrors.Serialization(fmt.Errorf("missing field `%s`", key))
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return apperrors.Serialization(err)
	}
	return nil
}

// bind adapts a typed call returning a value.
func bind[A, R any](fn func(A) (R, error), required ...string) Handler {
	return func(_ context.Context, raw json.RawMessage) (any, error) {
		var args A
		if err := decodeArgs(raw, &args, required...); err != nil {
			return nil, err
		}
		return fn(args)
	}
}

// bindVoid adapts a typed call whose only result is an error.
func bindVoid[A any](fn func(A) error, required ...string) Handler {
	return func(_ context.Context, raw json.RawMessage) (any, error) {
		var args A
		if err := decodeArgs(raw, &args, required...); err != nil {
			return nil, err
		}
		return nil, fn(args)
	}
}
