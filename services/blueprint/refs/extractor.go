// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package refs

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/schema"
)

// idPattern matches the dotted element ID convention layer.type.slug,
// possibly with extra dot-separated segments. Requires at least three
// segments so ordinary dotted strings (versions, hostnames with one dot)
// do not register as references.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*(\.[a-z0-9][a-z0-9_-]*){2,}$`)

// Extractor derives outgoing references from a single element.
//
// Extraction combines two sources:
//
//  1. Catalog-declared property paths for the element's (layer, type).
//  2. A generic heuristic scan of nested data: any string value that
//     lexically matches the dotted-ID pattern, or any string under a key
//     ending in "Ref"/"-ref", is emitted as a reference at the dot-joined
//     key path where it was found.
//
// Extract is a pure function of the element: no side effects, output order
// is deterministic (catalog references first, then scan references in
// document order), and duplicates by reference identity are dropped.
type Extractor struct {
	catalog *schema.Catalog
}

// NewExtractor creates an Extractor over the given catalog. A nil catalog
// behaves like an empty one.
func NewExtractor(catalog *schema.Catalog) *Extractor {
	if catalog == nil {
		catalog = schema.Empty()
	}
	return &Extractor{catalog: catalog}
}

// Extract returns the ordered, deduplicated list of outgoing references
// declared by the element. Elements with no data yield nil.
func (e *Extractor) Extract(elem *model.Element) []Reference {
	if elem == nil || elem.Data == nil {
		return nil
	}

	var out []Reference
	seen := make(map[string]struct{})

	emit := func(ref Reference) {
		if ref.TargetID == "" {
			return
		}
		key := ref.Key()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, ref)
	}

	for _, def := range e.catalog.DefinitionsFor(elem.Layer, elem.Type) {
		e.extractDeclared(elem, def, emit)
	}

	scanValue(elem.ID, elem.Data, nil, "", emit)

	return out
}

// extractDeclared resolves one catalog rule against the element data.
// A scalar string is one reference; a list of strings is one per entry.
func (e *Extractor) extractDeclared(elem *model.Element, def schema.ReferenceDefinition, emit func(Reference)) {
	val, ok := resolvePath(elem.Data, def.PropertyPath)
	if !ok {
		return
	}

	refType := ReferenceType(def.ReferenceType)
	if refType == "" {
		segments := strings.Split(def.PropertyPath, ".")
		refType = ClassifyProperty(segments[len(segments)-1])
	}

	switch val.Kind() {
	case model.KindString:
		target, _ := val.AsString()
		emit(Reference{
			SourceID:      elem.ID,
			TargetID:      target,
			PropertyPath:  def.PropertyPath,
			ReferenceType: refType,
			Required:      def.Required,
		})

	case model.KindList:
		for i, item := range val.Items() {
			target, isString := item.AsString()
			if !isString {
				continue
			}
			// Indexed path matches what the heuristic scan emits for the
			// same entry, so the two sources deduplicate.
			emit(Reference{
				SourceID:      elem.ID,
				TargetID:      target,
				PropertyPath:  def.PropertyPath + "." + strconv.Itoa(i),
				ReferenceType: refType,
				Required:      def.Required,
			})
		}
	}
}

// resolvePath walks a dot-joined path through nested maps. Returns false
// if any segment is missing or a non-map is traversed.
func resolvePath(data *model.Value, path string) (*model.Value, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		next, ok := current.Field(segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// scanValue recursively walks element data emitting heuristic references.
// lastKey is the nearest enclosing map key; list indices become path
// segments but do not replace the key used for classification.
func scanValue(sourceID string, v *model.Value, path []string, lastKey string, emit func(Reference)) {
	switch v.Kind() {
	case model.KindMap:
		for _, key := range v.Keys() {
			child, _ := v.Field(key)
			scanValue(sourceID, child, append(path, key), key, emit)
		}

	case model.KindList:
		for i, item := range v.Items() {
			scanValue(sourceID, item, append(path, strconv.Itoa(i)), lastKey, emit)
		}

	case model.KindString:
		s, _ := v.AsString()
		if s == "" {
			return
		}
		if !idPattern.MatchString(s) && !isRefKey(lastKey) {
			return
		}
		emit(Reference{
			SourceID:      sourceID,
			TargetID:      s,
			PropertyPath:  strings.Join(path, "."),
			ReferenceType: ClassifyProperty(lastKey),
		})
	}
}

// isRefKey reports whether a property key names a reference by convention.
func isRefKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.HasSuffix(lower, "ref") || strings.HasSuffix(lower, "-ref")
}
