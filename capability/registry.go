// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package capability

import (
	"context"
	"log/slog"

	"github.com/poiesic/tenderit/ai"
	"github.com/poiesic/tenderit/search"
	"github.com/poiesic/tenderit/storage"
)

// DefaultMaxRetries is the attempt budget used when Execute receives a
// non-positive maxRetries.
const DefaultMaxRetries = 3

// Deps holds the shared collaborators the registry supplies to every
// handler. Handlers read only the fields they need. Set once at
// construction and treated as read-only afterwards.
type Deps struct {
	Retriever   *search.Retriever
	Finder      *search.Finder
	Notices     storage.NoticeRepository
	Model       ai.ChatModel
	User        string
	Credentials map[string]string
}

// Param describes one parameter of a capability.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Handler executes a capability. It receives the registry's collaborators
// and the caller's arguments, and returns a structured result. A nil return
// is treated as an empty success.
//
// The registry re-invokes the handler on failure, so handlers must be
// idempotent with respect to read-only operations; a handler with external
// side effects must implement its own idempotency.
type Handler func(ctx context.Context, deps *Deps, args map[string]any) *Result

// Definition describes a named capability. Definitions are registered once
// and never mutated afterwards.
type Definition struct {
	Name        string
	Description string
	Category    string
	Params      []Param
	Handler     Handler
}

// Invocation names a capability and its arguments for batch execution.
type Invocation struct {
	Name string
	Args map[string]any
}

// Registry is a directory of named capabilities with collaborator injection
// and bounded retry.
type Registry struct {
	definitions map[string]*Definition
	deps        *Deps
	logger      *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistry creates a registry holding the given collaborators and
// definitions. Definitions with a duplicate name overwrite earlier ones.
func NewRegistry(deps *Deps, definitions []*Definition, opts ...RegistryOption) (*Registry, error) {
	if deps == nil {
		deps = &Deps{}
	}

	r := &Registry{
		definitions: make(map[string]*Definition, len(definitions)),
		deps:        deps,
		logger:      slog.Default().With("component", "capability-registry"),
	}
	for _, def := range definitions {
		if def == nil || def.Name == "" || def.Handler == nil {
			return nil, ErrInvalidDefinition
		}
		r.definitions[def.Name] = def
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Get returns the definition registered under name, or nil if absent.
func (r *Registry) Get(name string) *Definition {
	return r.definitions[name]
}

// Names returns the registered capability names in unspecified order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	return names
}

// Execute runs the named capability with bounded retry. maxRetries is the
// total attempt budget; non-positive means DefaultMaxRetries.
//
// A failed result (OK=false) or a panic triggers another attempt until the
// budget is spent. The returned result always carries TotalAttempts, and
// RetriesExhausted when every attempt failed. Failures never escape as
// panics or errors; the caller always receives a structured result.
func (r *Registry) Execute(ctx context.Context, name string, maxRetries int, args map[string]any) *Result {
	def := r.Get(name)
	if def == nil {
		r.logger.Warn("unknown capability", "name", name)
		return Failf("unknown capability: %s", name)
	}

	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	var last *Result
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result := r.safeInvoke(ctx, def, args)
		if result.OK {
			result.TotalAttempts = attempt
			result.RetriesExhausted = false
			return result
		}

		r.logger.Warn("capability attempt failed",
			"name", name,
			"attempt", attempt,
			"maxRetries", maxRetries,
			"error", result.Error)
		last = result
	}

	last.TotalAttempts = maxRetries
	last.RetriesExhausted = true
	return last
}

// ExecuteBatch runs each invocation independently and returns one result per
// input, preserving order. A missing name yields a failure entry without
// aborting the rest of the batch.
func (r *Registry) ExecuteBatch(ctx context.Context, invocations []Invocation) []*Result {
	results := make([]*Result, 0, len(invocations))
	for _, inv := range invocations {
		results = append(results, r.Execute(ctx, inv.Name, 0, inv.Args))
	}
	return results
}

// safeInvoke runs the handler, converting a panic into a failure result.
func (r *Registry) safeInvoke(ctx context.Context, def *Definition, args map[string]any) (result *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("capability panicked", "name", def.Name, "panic", rec)
			result = Failf("capability %s panicked: %v", def.Name, rec)
		}
	}()

	result = def.Handler(ctx, r.deps, args)
	if result == nil {
		result = Ok(nil)
	}
	return result
}
