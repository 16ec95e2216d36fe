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

// Model is the in-memory element set for one loaded documentation model.
//
// Thread Safety:
//
//	Model is NOT safe for concurrent mutation. It is populated once at
//	load time and read-only afterwards, matching the single-writer
//	discipline of the reference registry built on top of it.
type Model struct {
	// order holds element IDs in insertion order so iteration is
	// deterministic across runs.
	order []string

	byID map[string]*Element
}

// New creates an empty Model.
func New() *Model {
	return &Model{
		byID: make(map[string]*Element),
	}
}

// Add inserts or replaces an element. Replacing keeps the element's
// original position in iteration order.
func (m *Model) Add(elem *Element) {
	if elem == nil || elem.ID == "" {
		return
	}
	if _, exists := m.byID[elem.ID]; !exists {
		m.order = append(m.order, elem.ID)
	}
	m.byID[elem.ID] = elem
}

// Remove deletes an element by ID. Removing an absent ID is a no-op.
func (m *Model) Remove(id string) {
	if _, exists := m.byID[id]; !exists {
		return
	}
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// GetElement retrieves an element by ID.
func (m *Model) GetElement(id string) (*Element, bool) {
	elem, ok := m.byID[id]
	return elem, ok
}

// Elements returns all elements in insertion order. Callers must not
// modify the returned slice.
func (m *Model) Elements() []*Element {
	out := make([]*Element, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// ValidIDs returns the set of all element IDs currently in the model,
// suitable for broken-reference detection.
func (m *Model) ValidIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(m.byID))
	for id := range m.byID {
		ids[id] = struct{}{}
	}
	return ids
}

// Len returns the number of elements in the model.
func (m *Model) Len() int {
	return len(m.byID)
}
