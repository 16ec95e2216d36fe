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

import "testing"

func makeElement(id, layer, elemType string) *Element {
	return &Element{ID: id, Layer: layer, Type: elemType}
}

func TestModel_AddAndGet(t *testing.T) {
	m := New()
	m.Add(makeElement("business.service.billing", "business", "service"))
	m.Add(makeElement("application.service.billing-svc", "application", "service"))

	elem, ok := m.GetElement("business.service.billing")
	if !ok {
		t.Fatal("GetElement did not find registered element")
	}
	if elem.Layer != "business" {
		t.Errorf("Layer = %q, expected business", elem.Layer)
	}

	if _, ok := m.GetElement("missing.element.id"); ok {
		t.Error("GetElement found an unregistered element")
	}

	if m.Len() != 2 {
		t.Errorf("Len = %d, expected 2", m.Len())
	}
}

func TestModel_ElementsOrder(t *testing.T) {
	m := New()
	ids := []string{
		"business.service.c",
		"business.service.a",
		"business.service.b",
	}
	for _, id := range ids {
		m.Add(makeElement(id, "business", "service"))
	}

	elems := m.Elements()
	if len(elems) != 3 {
		t.Fatalf("Elements length = %d, expected 3", len(elems))
	}
	for i, id := range ids {
		if elems[i].ID != id {
			t.Errorf("Elements()[%d].ID = %q, expected %q (insertion order)", i, elems[i].ID, id)
		}
	}

	// Replacing keeps position.
	m.Add(makeElement("business.service.a", "business", "capability"))
	elems = m.Elements()
	if elems[1].ID != "business.service.a" || elems[1].Type != "capability" {
		t.Error("replacing an element should keep its iteration position")
	}
}

func TestModel_Remove(t *testing.T) {
	m := New()
	m.Add(makeElement("a.b.c", "a", "b"))
	m.Add(makeElement("d.e.f", "d", "e"))

	m.Remove("a.b.c")
	if _, ok := m.GetElement("a.b.c"); ok {
		t.Error("removed element still present")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d after removal, expected 1", m.Len())
	}

	// Removing an absent ID is a no-op.
	m.Remove("never.existed.here")
	if m.Len() != 1 {
		t.Errorf("Len = %d after no-op removal, expected 1", m.Len())
	}
}

func TestModel_ValidIDs(t *testing.T) {
	m := New()
	m.Add(makeElement("a.b.c", "a", "b"))
	m.Add(makeElement("d.e.f", "d", "e"))

	ids := m.ValidIDs()
	if len(ids) != 2 {
		t.Fatalf("ValidIDs length = %d, expected 2", len(ids))
	}
	if _, ok := ids["a.b.c"]; !ok {
		t.Error("ValidIDs missing a.b.c")
	}
}

func TestModel_AddIgnoresInvalid(t *testing.T) {
	m := New()
	m.Add(nil)
	m.Add(&Element{})
	if m.Len() != 0 {
		t.Errorf("Len = %d, expected 0 after invalid adds", m.Len())
	}
}
