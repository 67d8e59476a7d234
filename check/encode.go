package check

import (
	"encoding/json"
	"fmt"

	"github.com/ahrav/go-evalcheck/operator"
	"github.com/ahrav/go-evalcheck/plot"
)

// Serialized form of a check. Operators serialize as their registry name
// plus their JSON configuration, so decoding needs a registry that knows
// every name.
type encodedCheck struct {
	Name      string            `json:"name"`
	Operators []encodedOperator `json:"operators"`
	Plots     []plot.Spec       `json:"plots,omitempty"`
}

type encodedOperator struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config"`
}

// Encode serializes the check to JSON.
func (c Check) Encode() ([]byte, error) {
	enc := encodedCheck{Name: c.Name, Plots: c.Plots}
	for _, op := range c.Operators {
		cfg, err := json.Marshal(op)
		if err != nil {
			return nil, fmt.Errorf("check %q: encode operator %q: %w", c.Name, op.Name(), err)
		}
		enc.Operators = append(enc.Operators, encodedOperator{Name: op.Name(), Config: cfg})
	}
	return json.Marshal(enc)
}

// Decode reconstructs a check from its JSON form. Each operator is built
// fresh from the registry, then its serialized configuration is applied over
// the constructor defaults.
func Decode(registry *operator.Registry, data []byte) (Check, error) {
	var enc encodedCheck
	if err := json.Unmarshal(data, &enc); err != nil {
		return Check{}, fmt.Errorf("decode check: %w", err)
	}

	c := Check{Name: enc.Name, Plots: enc.Plots}
	for _, eo := range enc.Operators {
		op, err := registry.New(eo.Name)
		if err != nil {
			return Check{}, fmt.Errorf("decode check %q: %w", enc.Name, err)
		}
		if len(eo.Config) > 0 {
			if err := json.Unmarshal(eo.Config, op); err != nil {
				return Check{}, fmt.Errorf("decode check %q: operator %q config: %w", enc.Name, eo.Name, err)
			}
		}
		c.Operators = append(c.Operators, op)
	}
	return c, nil
}
