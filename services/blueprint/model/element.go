// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package model

// Element is a typed, layered documentation entity.
//
// The ID is an opaque dotted string of the form layer.type.slug, possibly
// with extra dot-separated segments. Engine code never parses the internal
// structure of an ID except for the lexical heuristic used during
// reference extraction.
type Element struct {
	// ID uniquely identifies the element across the whole model.
	ID string `json:"id" yaml:"id"`

	// Type is the element type within its layer (service, operation, ...).
	Type string `json:"type" yaml:"type"`

	// Layer is the architecture layer (business, application, api, ...).
	Layer string `json:"layer" yaml:"layer"`

	// Data holds the element's free-form nested properties. May be nil for
	// elements with no properties beyond their identity.
	Data *Value `json:"data,omitempty" yaml:"data,omitempty"`
}
