// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"sort"

	"github.com/AleutianAI/blueprint/services/blueprint/refs"
)

// Graph is an immutable directed graph snapshot of the registry's edge
// set. The node set is the union of all source and target IDs; edges are
// the deduplicated references at snapshot time.
//
// Edges are stored as ID pairs, not element pointers, so cyclic models
// never create object reference cycles.
//
// Thread Safety: Graph is read-only after construction and safe for
// concurrent use.
type Graph struct {
	nodes map[string]struct{}
	edges []refs.Reference

	// succ and pred hold unique neighbor IDs, sorted for deterministic
	// traversal order.
	succ map[string][]string
	pred map[string][]string

	// pairTypes maps "from\x1fto" to the reference types connecting the
	// pair, in insertion order.
	pairTypes map[string][]refs.ReferenceType
}

// DependencyGraph builds a fresh Graph from the current edge set.
//
// The snapshot is rebuilt on every call rather than cached, so it is
// always consistent with the registry even across mutations. For read
// batches, take one snapshot and query it repeatedly.
func (r *Registry) DependencyGraph() *Graph {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g := &Graph{
		nodes:     make(map[string]struct{}),
		edges:     append([]refs.Reference(nil), r.order...),
		succ:      make(map[string][]string),
		pred:      make(map[string][]string),
		pairTypes: make(map[string][]refs.ReferenceType),
	}

	seenPair := make(map[string]struct{})
	for _, ref := range g.edges {
		g.nodes[ref.SourceID] = struct{}{}
		g.nodes[ref.TargetID] = struct{}{}

		pair := ref.SourceID + "\x1f" + ref.TargetID
		g.pairTypes[pair] = append(g.pairTypes[pair], ref.ReferenceType)
		if _, dup := seenPair[pair]; dup {
			continue
		}
		seenPair[pair] = struct{}{}
		g.succ[ref.SourceID] = append(g.succ[ref.SourceID], ref.TargetID)
		g.pred[ref.TargetID] = append(g.pred[ref.TargetID], ref.SourceID)
	}

	for _, adjacency := range []map[string][]string{g.succ, g.pred} {
		for _, neighbors := range adjacency {
			sort.Strings(neighbors)
		}
	}

	return g
}

// NodeCount returns the number of nodes in the snapshot.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of deduplicated references in the snapshot.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// HasNode reports whether the given ID appears as a source or target.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node IDs in sorted order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Edges returns the snapshot's references. Callers must not modify the
// returned slice.
func (g *Graph) Edges() []refs.Reference {
	return g.edges
}

// Successors returns the unique, sorted IDs directly referenced by id.
func (g *Graph) Successors(id string) []string {
	return g.succ[id]
}

// Predecessors returns the unique, sorted IDs that directly reference id.
func (g *Graph) Predecessors(id string) []string {
	return g.pred[id]
}

// EdgeType returns the reference type connecting the pair. When parallel
// references of different types connect the same pair, the first
// registered wins. Returns the association fallback for unknown pairs so
// path rendering never fails.
func (g *Graph) EdgeType(fromID, toID string) refs.ReferenceType {
	types := g.pairTypes[fromID+"\x1f"+toID]
	if len(types) == 0 {
		return refs.TypeAssociation
	}
	return types[0]
}
