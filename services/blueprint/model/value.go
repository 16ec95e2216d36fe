// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package model defines the element data model shared by all Blueprint
// components.
//
// Elements are typed, layered documentation entities identified by opaque
// dotted IDs (layer.type.slug, possibly with extra segments). Element data
// is free-form nested YAML, represented by the Value sum type so that
// consumers can walk it without runtime type assertions on interface{}.
//
// # Ownership Model
//
// A Model owns its Elements. Elements handed out by GetElement and
// Elements MUST NOT be mutated by callers; the reference registry and the
// dependency tracker read them concurrently.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindString is a scalar string value.
	KindString Kind = iota

	// KindNumber is a scalar numeric value (stored as float64).
	KindNumber

	// KindBool is a scalar boolean value.
	KindBool

	// KindList is an ordered sequence of values.
	KindList

	// KindMap is a mapping with preserved key order.
	KindMap
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a recursive JSON-like variant: string, number, bool, list or
// map. Map key order is preserved from the source document so that
// reference extraction is deterministic.
//
// The zero Value is an empty string. Values are immutable once built;
// constructors copy nothing, so callers must not mutate slices passed in.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []*Value
	keys []string
	m    map[string]*Value
}

// StringValue returns a Value holding a string.
func StringValue(s string) *Value {
	return &Value{kind: KindString, str: s}
}

// NumberValue returns a Value holding a number.
func NumberValue(n float64) *Value {
	return &Value{kind: KindNumber, num: n}
}

// BoolValue returns a Value holding a bool.
func BoolValue(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// ListValue returns a Value holding the given items in order.
func ListValue(items ...*Value) *Value {
	return &Value{kind: KindList, list: items}
}

// MapValue returns an empty map Value. Populate it with Set.
func MapValue() *Value {
	return &Value{kind: KindMap, m: make(map[string]*Value)}
}

// Set adds or replaces a key in a map Value and returns the Value for
// chaining. Panics if the Value is not a map; this is a programming error,
// not a data error.
func (v *Value) Set(key string, val *Value) *Value {
	if v.kind != KindMap {
		panic(fmt.Sprintf("model: Set on %s value", v.kind))
	}
	if _, exists := v.m[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.m[key] = val
	return v
}

// Kind returns the variant held by the Value.
func (v *Value) Kind() Kind {
	return v.kind
}

// AsString returns the string payload and true if the Value is a string.
func (v *Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the numeric payload and true if the Value is a number.
func (v *Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean payload and true if the Value is a bool.
func (v *Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Items returns the list payload. Nil unless the Value is a list.
func (v *Value) Items() []*Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Keys returns the map keys in document order. Nil unless the Value is a map.
func (v *Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	return v.keys
}

// Field returns the value at key and true if the Value is a map and the
// key is present.
func (v *Value) Field(key string) (*Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	val, ok := v.m[key]
	return val, ok
}

// UnmarshalYAML decodes a YAML node into a Value, preserving map key
// order. Unsupported node kinds (aliases resolve transparently; null
// becomes an empty string) do not error, matching the permissive model
// files Blueprint accepts.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeNode(node)
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}

func decodeNode(node *yaml.Node) (*Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeNode(node.Alias)

	case yaml.ScalarNode:
		return decodeScalar(node), nil

	case yaml.SequenceNode:
		items := make([]*Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return ListValue(items...), nil

	case yaml.MappingNode:
		m := MapValue()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			val, err := decodeNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, val)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("model: unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
}

func decodeScalar(node *yaml.Node) *Value {
	switch node.Tag {
	case "!!bool":
		return BoolValue(node.Value == "true" || node.Value == "True" || node.Value == "TRUE")
	case "!!int", "!!float":
		if n, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return NumberValue(n)
		}
		return StringValue(node.Value)
	case "!!null":
		return StringValue("")
	default:
		return StringValue(node.Value)
	}
}

// MarshalJSON renders the Value as plain JSON for CLI output.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toInterface())
}

// MarshalYAML renders the Value for YAML output.
func (v *Value) MarshalYAML() (interface{}, error) {
	return v.toInterface(), nil
}

func (v *Value) toInterface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		out := make([]interface{}, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.toInterface())
		}
		return out
	case KindMap:
		// JSON objects lose key order; acceptable for display output.
		out := make(map[string]interface{}, len(v.m))
		for key, val := range v.m {
			out[key] = val.toInterface()
		}
		return out
	default:
		return nil
	}
}
