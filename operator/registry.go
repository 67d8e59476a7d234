package operator

import (
	"fmt"
	"sort"
)

// Factory constructs a fresh operator with default configuration.
type Factory func() Operator

// Registry maps operator names to their factories so operators can be
// reconstructed from a serialized name plus configuration.
//
// A Registry is an explicit value, not process-global state: build it once
// at startup (usually via Builtins), then treat it as read-only. Register
// and the read methods must not be called concurrently; steady-state
// concurrent reads are safe.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register records the factory under its operator's declared name.
// Registering a name twice fails with ErrDuplicateOperator: silent
// overwrites would make reconstruction depend on registration order.
func (r *Registry) Register(f Factory) error {
	name := f().Name()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateOperator, name)
	}
	r.factories[name] = f
	return nil
}

// mustRegister panics on a duplicate name. Only used while assembling the
// built-in registry, where a duplicate is a programming error.
func (r *Registry) mustRegister(f Factory) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name, or ErrUnknownOperator.
func (r *Registry) Lookup(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return f, nil
}

// New constructs a fresh, default-configured operator by name.
func (r *Registry) New(name string) (Operator, error) {
	f, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// Names returns every registered operator name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns a registry populated with every built-in operator.
func Builtins() *Registry {
	r := NewRegistry()
	for _, f := range []Factory{
		func() Operator { return NewFactualAccuracy() },
		func() Operator { return NewResponseCompleteness() },
		func() Operator { return NewResponseCompletenessWrtContext() },
		func() Operator { return NewContextRelevance() },
		func() Operator { return NewResponseRelevance() },
		func() Operator { return NewResponseConciseness() },
		func() Operator { return NewResponseConsistency() },
		func() Operator { return NewValidResponse() },
		func() Operator { return NewResponseMatching() },
		func() Operator { return NewLanguageCritique() },
		func() Operator { return NewToneCritique() },
		func() Operator { return NewGuidelineAdherence() },
		func() Operator { return NewPromptInjection() },
		func() Operator { return NewJailbreakDetection() },
		func() Operator { return NewConversationSatisfaction() },
		func() Operator { return NewCodeHallucination() },
	} {
		r.mustRegister(f)
	}
	return r
}
