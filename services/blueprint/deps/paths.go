// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package deps

import (
	"context"
	"sort"
	"strings"

	"github.com/AleutianAI/blueprint/services/blueprint/registry"
)

// MaxPathDepth bounds path enumeration. Simple paths always terminate on
// finite graphs, but the count can explode combinatorially; paths longer
// than this are not architecture insights anyone acts on.
const MaxPathDepth = 25

// Path is one dependency path between two elements.
type Path struct {
	// Source is the first element ID on the path.
	Source string `json:"source" yaml:"source"`

	// Target is the last element ID on the path.
	Target string `json:"target" yaml:"target"`

	// Nodes holds the element IDs in path order, including Source and
	// Target.
	Nodes []string `json:"nodes" yaml:"nodes"`

	// Depth is the number of edges in the path.
	Depth int `json:"depth" yaml:"depth"`

	// RelationshipTypes holds the reference type of each traversed edge,
	// in order. len(RelationshipTypes) == Depth.
	RelationshipTypes []string `json:"relationshipTypes" yaml:"relationshipTypes"`
}

// FindDependencyPaths enumerates all simple (non-repeating-node) paths
// from source to target over the forward edge direction.
//
// Description:
//
//	Depth-first backtracking over a fresh graph snapshot, bounded by
//	MaxPathDepth. Results are sorted shortest-first, ties broken by node
//	sequence, so output is deterministic. An empty list means no path
//	exists or an endpoint is absent; neither is an error.
func (t *Tracker) FindDependencyPaths(ctx context.Context, sourceID, targetID string) []Path {
	g := t.reg.DependencyGraph()

	if !g.HasNode(sourceID) || !g.HasNode(targetID) {
		return nil
	}

	var paths []Path
	onPath := map[string]struct{}{sourceID: {}}
	current := []string{sourceID}

	var walk func(id string)
	walk = func(id string) {
		if len(current)-1 >= MaxPathDepth {
			return
		}
		for _, next := range g.Successors(id) {
			if next == targetID {
				// Reaching the target always completes a path, even when
				// source == target (a cycle back to the start).
				paths = append(paths, buildPath(g, append(current, next)))
				continue
			}
			if _, visiting := onPath[next]; visiting {
				continue
			}
			onPath[next] = struct{}{}
			current = append(current, next)
			walk(next)
			current = current[:len(current)-1]
			delete(onPath, next)
		}
	}
	walk(sourceID)

	sort.Slice(paths, func(i, j int) bool {
		if paths[i].Depth != paths[j].Depth {
			return paths[i].Depth < paths[j].Depth
		}
		return strings.Join(paths[i].Nodes, "\x1f") < strings.Join(paths[j].Nodes, "\x1f")
	})
	return paths
}

func buildPath(g *registry.Graph, nodes []string) Path {
	copied := append([]string(nil), nodes...)
	types := make([]string, 0, len(copied)-1)
	for i := 0; i+1 < len(copied); i++ {
		types = append(types, string(g.EdgeType(copied[i], copied[i+1])))
	}
	return Path{
		Source:            copied[0],
		Target:            copied[len(copied)-1],
		Nodes:             copied,
		Depth:             len(copied) - 1,
		RelationshipTypes: types,
	}
}
