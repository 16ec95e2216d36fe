// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation turns graph facts into user-facing findings.
//
// The graph engine only reports facts: broken references and cycles are
// data, never errors. This package is the component that judges them,
// attaching severity and a fix suggestion the CLI can print.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/registry"
)

// Severity grades a finding.
type Severity string

const (
	// SeverityError marks findings that should fail a build.
	SeverityError Severity = "error"

	// SeverityWarning marks findings worth fixing but not fatal.
	SeverityWarning Severity = "warning"
)

// Finding is one user-facing validation result.
type Finding struct {
	// Layer is the architecture layer of the offending element, when it
	// can be resolved.
	Layer string `json:"layer,omitempty" yaml:"layer,omitempty"`

	// ElementID is the element the finding is attached to.
	ElementID string `json:"elementId" yaml:"elementId"`

	// Severity grades the finding.
	Severity Severity `json:"severity" yaml:"severity"`

	// Message describes the problem.
	Message string `json:"message" yaml:"message"`

	// FixSuggestion describes a concrete remedy.
	FixSuggestion string `json:"fixSuggestion,omitempty" yaml:"fixSuggestion,omitempty"`
}

// Validator interprets registry facts against a loaded model.
type Validator struct {
	model *model.Model
	reg   *registry.Registry
}

// New creates a Validator over the given model and registry.
func New(m *model.Model, reg *registry.Registry) *Validator {
	return &Validator{model: m, reg: reg}
}

// Validate reports broken references as errors and cycles as warnings.
//
// Broken required references and broken optional references both surface
// as errors; requiredness is already reflected in the message so callers
// can downgrade if they choose. Ordering is deterministic: broken
// references in registration order, then cycles in canonical order.
func (v *Validator) Validate(ctx context.Context) []Finding {
	var findings []Finding

	validIDs := v.model.ValidIDs()
	for _, ref := range v.reg.FindBrokenReferences(validIDs) {
		layer := ""
		if elem, ok := v.model.GetElement(ref.SourceID); ok {
			layer = elem.Layer
		}

		qualifier := "optional"
		if ref.Required {
			qualifier = "required"
		}

		findings = append(findings, Finding{
			Layer:     layer,
			ElementID: ref.SourceID,
			Severity:  SeverityError,
			Message: fmt.Sprintf("%s reference %q at %q points to missing element %q",
				qualifier, ref.ReferenceType, ref.PropertyPath, ref.TargetID),
			FixSuggestion: v.suggestFix(ref.TargetID),
		})
	}

	for _, cycle := range v.reg.FindCircularDependencies(ctx) {
		findings = append(findings, Finding{
			ElementID: cycle[0],
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("circular dependency: %s", strings.Join(append(cycle, cycle[0]), " -> ")),
			FixSuggestion: "break the cycle by removing or inverting one of the references, " +
				"or extract the shared concern into its own element",
		})
	}

	return findings
}

// suggestFix proposes existing elements whose trailing slug matches the
// missing target, catching the common case of a typo in the layer or type
// segments.
func (v *Validator) suggestFix(missingID string) string {
	segments := strings.Split(missingID, ".")
	slug := segments[len(segments)-1]

	var candidates []string
	for _, elem := range v.model.Elements() {
		if strings.HasSuffix(elem.ID, "."+slug) {
			candidates = append(candidates, elem.ID)
		}
	}

	if len(candidates) == 0 {
		return fmt.Sprintf("add element %q to the model or remove the reference", missingID)
	}
	return fmt.Sprintf("did you mean %s?", strings.Join(candidates, " or "))
}
