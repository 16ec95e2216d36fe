// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package registry owns the reference edge set for one loaded model.
//
// The registry maintains indexed lookups by source, target and reference
// type, detects broken references against a caller-supplied valid-ID set,
// builds directed graph snapshots on demand, finds cycles, and performs
// reverse-edge impact analysis.
//
// # Failure Semantics
//
// No query errors for absent IDs: an unknown element simply contributes no
// edges and yields empty results. Broken references and cycles are
// reported as data, never raised; the validator component decides their
// severity.
//
// # Thread Safety
//
// Mutations (AddReference, RemoveReference, RegisterElement) follow a
// single-writer discipline. An internal RWMutex additionally allows
// concurrent read batches while a writer is absent, so callers rebuilding
// the registry per model load get safe concurrent queries for free.
//
// # Lifecycle
//
// A Registry is constructed empty per model session, populated by calling
// RegisterElement for every loaded element, and logically rebuilt whenever
// the element set changes. It is owned by the session that loaded the
// model; there is no process-wide registry.
package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/refs"
)

// Registry is the edge store for one model session.
type Registry struct {
	mu sync.RWMutex

	// buildID correlates log lines and traces from one registry instance.
	buildID string

	extractor *refs.Extractor

	// order holds every reference in insertion order. References are value
	// types deduplicated by identity key.
	order []refs.Reference

	keys     map[string]struct{}
	bySource map[string][]refs.Reference
	byTarget map[string][]refs.Reference
	byType   map[refs.ReferenceType][]refs.Reference
}

// New creates an empty Registry using the given extractor for
// RegisterElement. A nil extractor disables element registration but
// leaves direct AddReference usable (handy in tests).
func New(extractor *refs.Extractor) *Registry {
	return &Registry{
		buildID:   uuid.NewString(),
		extractor: extractor,
		keys:      make(map[string]struct{}),
		bySource:  make(map[string][]refs.Reference),
		byTarget:  make(map[string][]refs.Reference),
		byType:    make(map[refs.ReferenceType][]refs.Reference),
	}
}

// BuildID returns the unique ID of this registry instance.
func (r *Registry) BuildID() string {
	return r.buildID
}

// AddReference inserts a reference. Duplicate references (same identity
// key) are dropped, giving the edge set set semantics.
func (r *Registry) AddReference(ref refs.Reference) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(ref)
}

func (r *Registry) addLocked(ref refs.Reference) {
	key := ref.Key()
	if _, dup := r.keys[key]; dup {
		return
	}
	r.keys[key] = struct{}{}
	r.order = append(r.order, ref)
	r.bySource[ref.SourceID] = append(r.bySource[ref.SourceID], ref)
	r.byTarget[ref.TargetID] = append(r.byTarget[ref.TargetID], ref)
	r.byType[ref.ReferenceType] = append(r.byType[ref.ReferenceType], ref)
}

// RemoveReference deletes every reference between the given pair,
// regardless of property path or type. Removing an absent pair is a no-op.
func (r *Registry) RemoveReference(sourceID, targetID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match := func(ref refs.Reference) bool {
		return ref.SourceID == sourceID && ref.TargetID == targetID
	}

	removed := false
	for _, ref := range r.order {
		if match(ref) {
			delete(r.keys, ref.Key())
			removed = true
		}
	}
	if !removed {
		return
	}

	r.order = filterRefs(r.order, match)
	r.bySource[sourceID] = filterRefs(r.bySource[sourceID], match)
	if len(r.bySource[sourceID]) == 0 {
		delete(r.bySource, sourceID)
	}
	r.byTarget[targetID] = filterRefs(r.byTarget[targetID], match)
	if len(r.byTarget[targetID]) == 0 {
		delete(r.byTarget, targetID)
	}
	for refType, list := range r.byType {
		filtered := filterRefs(list, match)
		if len(filtered) == 0 {
			delete(r.byType, refType)
		} else {
			r.byType[refType] = filtered
		}
	}
}

func filterRefs(list []refs.Reference, drop func(refs.Reference) bool) []refs.Reference {
	out := list[:0:0]
	for _, ref := range list {
		if !drop(ref) {
			out = append(out, ref)
		}
	}
	return out
}

// RegisterElement extracts the element's outgoing references and adds
// them. Idempotent: registering the same element twice leaves the edge set
// unchanged.
func (r *Registry) RegisterElement(elem *model.Element) {
	if r.extractor == nil || elem == nil {
		return
	}
	extracted := r.extractor.Extract(elem)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ref := range extracted {
		r.addLocked(ref)
	}
}

// References returns every reference in insertion order.
func (r *Registry) References() []refs.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]refs.Reference(nil), r.order...)
}

// ReferencesFrom returns all references with the given source, in
// insertion order. Empty for unknown IDs.
func (r *Registry) ReferencesFrom(id string) []refs.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]refs.Reference(nil), r.bySource[id]...)
}

// ReferencesTo returns all references with the given target, in insertion
// order. Empty for unknown IDs.
func (r *Registry) ReferencesTo(id string) []refs.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]refs.Reference(nil), r.byTarget[id]...)
}

// ReferencesByType returns all references of the given type, in insertion
// order.
func (r *Registry) ReferencesByType(refType refs.ReferenceType) []refs.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]refs.Reference(nil), r.byType[refType]...)
}

// Len returns the number of references in the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// FindBrokenReferences returns every reference whose target is not in the
// supplied valid-ID set, in insertion order. Pure with respect to registry
// state; does not mutate anything.
func (r *Registry) FindBrokenReferences(validIDs map[string]struct{}) []refs.Reference {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var broken []refs.Reference
	for _, ref := range r.order {
		if _, ok := validIDs[ref.TargetID]; !ok {
			broken = append(broken, ref)
		}
	}
	return broken
}
