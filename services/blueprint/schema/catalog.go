// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package schema provides the reference definition catalog.
//
// A catalog is a static set of per-(layer, element type, property path)
// rules describing the cross-references a model is allowed to declare.
// Catalogs are loaded once per model session and read-only afterwards.
//
// A malformed catalog entry is the one fail-fast condition in the graph
// engine: NewCatalog returns a descriptive configuration error and nothing
// downstream should proceed with an invalid catalog.
package schema

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is returned when a catalog entry fails validation.
var ErrInvalidDefinition = errors.New("invalid reference definition")

// Cardinality values accepted by a ReferenceDefinition.
const (
	// CardinalityOne means the property holds exactly one reference.
	CardinalityOne = "1"

	// CardinalityOptional means the property holds zero or one reference.
	CardinalityOptional = "0..1"

	// CardinalityArray means the property holds a list of references.
	CardinalityArray = "array"
)

// ReferenceDefinition declares an allowed cross-reference for a given
// layer, element type and property path. Immutable once loaded.
type ReferenceDefinition struct {
	// Layer is the source element layer this rule applies to.
	Layer string `yaml:"layer" json:"layer" validate:"required"`

	// ElementType is the source element type this rule applies to.
	ElementType string `yaml:"elementType" json:"elementType" validate:"required"`

	// PropertyPath is the dot-joined path of the reference-bearing
	// property inside the element data.
	PropertyPath string `yaml:"propertyPath" json:"propertyPath" validate:"required"`

	// TargetLayer is the layer referenced elements are expected to live in.
	TargetLayer string `yaml:"targetLayer" json:"targetLayer"`

	// TargetType is the type referenced elements are expected to have.
	TargetType string `yaml:"targetType" json:"targetType"`

	// ReferenceType overrides the classifier for references extracted via
	// this rule. Empty means classify from the property name.
	ReferenceType string `yaml:"referenceType" json:"referenceType"`

	// Required marks references extracted via this rule as mandatory.
	Required bool `yaml:"required" json:"required"`

	// Cardinality is one of "1", "0..1" or "array". Defaults to "1".
	Cardinality string `yaml:"cardinality" json:"cardinality" validate:"required,oneof=1 0..1 array"`
}

// Catalog is an immutable set of reference definitions indexed by source
// layer and element type.
type Catalog struct {
	defs   []ReferenceDefinition
	byKind map[string][]ReferenceDefinition
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewCatalog builds a catalog from the given definitions.
//
// Every definition is validated up front; the first malformed entry aborts
// construction with an error wrapping ErrInvalidDefinition. An empty
// Cardinality defaults to "1" before validation.
func NewCatalog(defs []ReferenceDefinition) (*Catalog, error) {
	c := &Catalog{
		defs:   make([]ReferenceDefinition, 0, len(defs)),
		byKind: make(map[string][]ReferenceDefinition),
	}

	for i, def := range defs {
		if def.Cardinality == "" {
			def.Cardinality = CardinalityOne
		}
		if err := validate.Struct(def); err != nil {
			return nil, fmt.Errorf("%w: entry %d (%s.%s %s): %v",
				ErrInvalidDefinition, i, def.Layer, def.ElementType, def.PropertyPath, err)
		}
		c.defs = append(c.defs, def)
		key := kindKey(def.Layer, def.ElementType)
		c.byKind[key] = append(c.byKind[key], def)
	}

	return c, nil
}

// Empty returns a catalog with no definitions. Extraction then relies
// solely on the generic heuristic scan.
func Empty() *Catalog {
	c, _ := NewCatalog(nil)
	return c
}

// DefinitionsFor returns the definitions that apply to the given source
// layer and element type, in catalog order. Returns nil if none apply.
func (c *Catalog) DefinitionsFor(layer, elementType string) []ReferenceDefinition {
	return c.byKind[kindKey(layer, elementType)]
}

// Definitions returns every definition in catalog order. Callers must not
// modify the returned slice.
func (c *Catalog) Definitions() []ReferenceDefinition {
	return c.defs
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int {
	return len(c.defs)
}

func kindKey(layer, elementType string) string {
	return layer + "/" + elementType
}

// catalogFile is the on-disk YAML shape of a catalog.
type catalogFile struct {
	Definitions []ReferenceDefinition `yaml:"definitions"`
}

// LoadCatalog reads a YAML catalog file and builds a validated Catalog.
//
// The file holds a top-level "definitions" list:
//
//	definitions:
//	  - layer: application
//	    elementType: service
//	    propertyPath: realizes
//	    targetLayer: business
//	    targetType: service
//	    referenceType: realization
//	    required: true
//	    cardinality: "1"
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("schema: parse catalog %s: %w", path, err)
	}

	return NewCatalog(file.Definitions)
}
