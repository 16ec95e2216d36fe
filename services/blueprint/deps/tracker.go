// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package deps provides dependency tracing over a model and its reference
// registry.
//
// The Tracker is a read-only façade: every query takes a fresh graph
// snapshot, runs a self-contained BFS with a local visited set, and
// terminates when the frontier is empty or the depth bound is exhausted.
// No state persists between calls.
package deps

import (
	"context"
	"fmt"
	"sort"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/registry"
)

// Direction selects the edge orientation for dependency tracing.
type Direction int

const (
	// DirectionUp follows edges where the element is the source: its
	// outgoing dependencies, what it depends on.
	DirectionUp Direction = iota

	// DirectionDown follows edges where the element is the target: its
	// dependents, what depends on it.
	DirectionDown

	// DirectionBoth is the set union of up and down results.
	DirectionBoth
)

// String returns the string representation of the Direction.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseDirection converts a CLI string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirectionUp, nil
	case "down":
		return DirectionDown, nil
	case "both":
		return DirectionBoth, nil
	default:
		return DirectionUp, fmt.Errorf("deps: unknown direction %q (want up, down or both)", s)
	}
}

// Hub is an element whose combined in+out reference degree meets the hub
// threshold.
type Hub struct {
	// ID is the element ID.
	ID string `json:"id" yaml:"id"`

	// Degree is the total reference degree (in + out).
	Degree int `json:"degree" yaml:"degree"`
}

// Tracker answers dependency queries over a loaded model and its registry.
//
// Thread Safety: Tracker holds no mutable state of its own; it is as safe
// for concurrent use as the registry and model it wraps.
type Tracker struct {
	model *model.Model
	reg   *registry.Registry
}

// NewTracker creates a Tracker over the given model and registry.
func NewTracker(m *model.Model, reg *registry.Registry) *Tracker {
	return &Tracker{model: m, reg: reg}
}

// TraceDependencies walks the dependency graph from the given element.
//
// Description:
//
//	BFS from elementID following the direction's edge orientation,
//	bounded by maxDepth hops (1 = immediate neighbors, <= 0 = unbounded).
//	Visited IDs are resolved to elements via the model; IDs with no
//	resolvable element are skipped, not errored. An element absent from
//	the graph yields the empty list: a normal outcome, not a failure.
func (t *Tracker) TraceDependencies(ctx context.Context, elementID string, dir Direction, maxDepth int) []*model.Element {
	g := t.reg.DependencyGraph()

	var ids []string
	switch dir {
	case DirectionUp:
		ids = t.traceUp(g, elementID, maxDepth)
	case DirectionDown:
		ids = t.traceDown(g, elementID, maxDepth)
	case DirectionBoth:
		ids = t.traceUp(g, elementID, maxDepth)
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			seen[id] = struct{}{}
		}
		for _, id := range t.traceDown(g, elementID, maxDepth) {
			if _, dup := seen[id]; !dup {
				ids = append(ids, id)
			}
		}
	}

	out := make([]*model.Element, 0, len(ids))
	for _, id := range ids {
		if elem, ok := t.model.GetElement(id); ok {
			out = append(out, elem)
		}
	}
	return out
}

// traceUp runs the direction-specific BFS over outgoing edges. Exported
// behavior is covered through TraceDependencies; kept separate because it
// carries the core traversal contract (visited-set discipline, depth
// bound, no revisits).
func (t *Tracker) traceUp(g *registry.Graph, startID string, maxDepth int) []string {
	return bfs(g, startID, maxDepth, g.Successors)
}

// traceDown runs the direction-specific BFS over incoming edges.
func (t *Tracker) traceDown(g *registry.Graph, startID string, maxDepth int) []string {
	return bfs(g, startID, maxDepth, g.Predecessors)
}

// bfs walks from startID via the given neighbor function, returning
// visited IDs in traversal order, excluding the start node.
func bfs(g *registry.Graph, startID string, maxDepth int, neighbors func(string) []string) []string {
	if !g.HasNode(startID) {
		return nil
	}

	type frontierEntry struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{startID: {}}
	queue := []frontierEntry{{id: startID, depth: 0}}
	var order []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if maxDepth > 0 && current.depth >= maxDepth {
			continue
		}

		for _, next := range neighbors(current.id) {
			if _, done := visited[next]; done {
				continue
			}
			visited[next] = struct{}{}
			order = append(order, next)
			queue = append(queue, frontierEntry{id: next, depth: current.depth + 1})
		}
	}

	return order
}

// DependencyLayers groups everything connected to the element, in either
// direction and at any depth, by architecture layer. IDs are sorted within
// each layer. IDs that resolve to no element are skipped.
func (t *Tracker) DependencyLayers(ctx context.Context, elementID string) map[string][]string {
	layers := make(map[string][]string)
	for _, elem := range t.TraceDependencies(ctx, elementID, DirectionBoth, 0) {
		layers[elem.Layer] = append(layers[elem.Layer], elem.ID)
	}
	for _, ids := range layers {
		sort.Strings(ids)
	}
	return layers
}

// OrphanedElements returns the model elements with zero total reference
// degree, in model iteration order.
func (t *Tracker) OrphanedElements() []*model.Element {
	var orphans []*model.Element
	for _, elem := range t.model.Elements() {
		if t.degree(elem.ID) == 0 {
			orphans = append(orphans, elem)
		}
	}
	return orphans
}

// HubElements returns the elements whose total degree meets the threshold,
// sorted by degree descending with ties broken by ID ascending.
func (t *Tracker) HubElements(threshold int) []Hub {
	var hubs []Hub
	for _, elem := range t.model.Elements() {
		if degree := t.degree(elem.ID); degree >= threshold {
			hubs = append(hubs, Hub{ID: elem.ID, Degree: degree})
		}
	}

	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].Degree != hubs[j].Degree {
			return hubs[i].Degree > hubs[j].Degree
		}
		return hubs[i].ID < hubs[j].ID
	})
	return hubs
}

// degree is the total in+out reference count for an element, counting
// every reference rather than deduplicated pairs.
func (t *Tracker) degree(id string) int {
	return len(t.reg.ReferencesFrom(id)) + len(t.reg.ReferencesTo(id))
}
