// Package script replays recorded event sequences through a picker.
//
// A script names a machine, optionally overrides role bindings, and lists the
// events to deliver:
//
//	machine: drag-rect
//	bindings:
//	  mouse:
//	    mouse-select1: {button: right}
//	steps:
//	  - {kind: press, button: right, pos: {x: 2, y: 3}}
//	  - {kind: move, pos: {x: 8, y: 9}}
//	  - {kind: release, button: right, pos: {x: 8, y: 9}}
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/pattern"
	"gopkg.in/yaml.v3"
)

// Script is a replayable event sequence.
type Script struct {
	Machine  machine.Kind    `json:"machine" yaml:"machine"`
	Bindings *pattern.Config `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Steps    []domain.Event  `json:"steps" yaml:"steps"`
}

// Trace records what one step did.
type Trace struct {
	Index    int             `json:"index"`
	Event    domain.Event    `json:"event"`
	Commands domain.Commands `json:"commands"`
	State    string          `json:"state"`
	Points   int             `json:"points"`
}

// Report is the outcome of a full replay.
type Report struct {
	Machine    machine.Kind       `json:"machine"`
	Trace      []Trace            `json:"trace"`
	Selections []domain.Selection `json:"selections"`
}

// Load reads a script from a YAML or JSON file, chosen by extension.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// rawScript defers the bindings block so it is decoded like a bindings file.
type rawScript struct {
	Machine  machine.Kind   `json:"machine" yaml:"machine"`
	Bindings map[string]any `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Steps    []domain.Event `json:"steps" yaml:"steps"`
}

// Parse decodes a script and validates every step.
func Parse(data []byte, format string) (*Script, error) {
	var raw rawScript
	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json script: %w", err)
		}
	default:
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml script: %w", err)
		}
	}

	s := &Script{Machine: raw.Machine, Steps: raw.Steps}
	if raw.Bindings != nil {
		cfg, err := pattern.DecodeConfig(raw.Bindings)
		if err != nil {
			return nil, fmt.Errorf("bindings: %w", err)
		}
		s.Bindings = &cfg
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate normalizes the machine kind and checks the bindings and every step.
func (s *Script) Validate() error {
	kind, err := machine.ParseKind(string(s.Machine))
	if err != nil {
		return err
	}
	s.Machine = kind
	if s.Bindings != nil {
		if _, err := pattern.FromConfig(*s.Bindings); err != nil {
			return fmt.Errorf("bindings: %w", err)
		}
	}
	for i, ev := range s.Steps {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Run feeds every step to a fresh picker. Options are applied after the
// script's own bindings, so callers may override them.
func Run(ctx context.Context, s *Script, opts ...picker.Option) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	report := &Report{Machine: s.Machine, Trace: make([]Trace, 0, len(s.Steps))}

	var pickerOpts []picker.Option
	if s.Bindings != nil {
		matcher, err := pattern.FromConfig(*s.Bindings)
		if err != nil {
			return nil, err
		}
		pickerOpts = append(pickerOpts, picker.WithMatcher(matcher))
	}
	pickerOpts = append(pickerOpts, picker.WithLifecycleHooks(domain.LifecycleHooks{
		OnSelected: func(_ string, sel domain.Selection) {
			report.Selections = append(report.Selections, sel)
		},
	}))
	pickerOpts = append(pickerOpts, opts...)

	p, err := picker.New(s.Machine, pickerOpts...)
	if err != nil {
		return nil, err
	}

	for i, ev := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		cmds := p.Feed(ev)
		report.Trace = append(report.Trace, Trace{
			Index:    i,
			Event:    ev,
			Commands: cmds,
			State:    p.Machine().StateName(p.State()),
			Points:   len(p.Points()),
		})
	}
	return report, nil
}
