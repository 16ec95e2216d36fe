// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package refs defines typed references between model elements and the
// extraction logic that derives them from element data.
//
// A Reference is a directed edge from one element to another, recorded at
// the property path where it was declared. Extraction combines the rules
// declared in the schema catalog with a generic heuristic scan of nested
// element data, so models stay useful even when the catalog does not cover
// every property.
package refs

// ReferenceType categorizes the relationship a reference expresses.
type ReferenceType string

const (
	// TypeRealization marks an element realizing a more abstract one
	// (application service realizes business service).
	TypeRealization ReferenceType = "realization"

	// TypeServing marks an element serving or providing for another.
	TypeServing ReferenceType = "serving"

	// TypeAccess marks an element accessing data held by another.
	TypeAccess ReferenceType = "access"

	// TypeUsage marks an element using another.
	TypeUsage ReferenceType = "usage"

	// TypeAssociation is the fallback for relationships the classifier
	// cannot categorize. Never an error.
	TypeAssociation ReferenceType = "association"
)

// Reference is a directed, typed edge between two elements.
//
// Reference is a value type: two references are equal iff SourceID,
// TargetID, PropertyPath and ReferenceType all match. Multiple references
// may connect the same (source, target) pair at different property paths.
type Reference struct {
	// SourceID is the ID of the element declaring the reference.
	SourceID string `json:"sourceId" yaml:"sourceId"`

	// TargetID is the ID of the referenced element.
	TargetID string `json:"targetId" yaml:"targetId"`

	// PropertyPath is the dot-joined path of the property the reference
	// was extracted from. List entries contribute their index as a path
	// segment.
	PropertyPath string `json:"propertyPath" yaml:"propertyPath"`

	// ReferenceType categorizes the relationship.
	ReferenceType ReferenceType `json:"referenceType" yaml:"referenceType"`

	// Required is true when the catalog declares the reference mandatory.
	// Not part of reference identity.
	Required bool `json:"required" yaml:"required"`
}

// Key returns the identity key of the reference. References with equal
// keys are the same edge; Required does not participate.
func (r Reference) Key() string {
	return r.SourceID + "\x1f" + r.TargetID + "\x1f" + r.PropertyPath + "\x1f" + string(r.ReferenceType)
}
