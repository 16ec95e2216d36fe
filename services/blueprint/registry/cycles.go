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
	"context"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Node colors for depth-first cycle detection.
const (
	colorWhite = iota // unvisited
	colorGray         // on the current DFS stack
	colorBlack        // fully explored
)

// FindCircularDependencies detects all cycles in the current edge set.
//
// Description:
//
//	Runs depth-first search with three-color marking from every unvisited
//	node of a fresh graph snapshot. A cycle is the ordered node list from
//	the point a gray (in-progress) node is re-encountered back to itself.
//	Self-loops count as single-node cycles.
//
//	Results are canonicalized for determinism: each cycle is rotated so
//	its lexicographically smallest node leads, overlapping discoveries
//	from different DFS roots are deduplicated, and the cycle list is
//	sorted.
//
// Outputs:
//
//	[][]string - One entry per distinct cycle. Empty for acyclic graphs.
//	Cycles are data, never an error: severity is the validator's call.
//
// Complexity:
//
//	O(V + E) for detection; canonicalization adds O(C * L log L) over the
//	discovered cycles.
func (r *Registry) FindCircularDependencies(ctx context.Context) [][]string {
	start := time.Now()
	_ = initMetrics()

	ctx, span := tracer.Start(ctx, "registry.FindCircularDependencies",
		trace.WithAttributes(attribute.String("registry.build_id", r.buildID)))
	defer span.End()

	g := r.DependencyGraph()

	colors := make(map[string]int, g.NodeCount())
	stackPos := make(map[string]int)
	var stack []string
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		colors[id] = colorGray
		stackPos[id] = len(stack)
		stack = append(stack, id)

		for _, next := range g.Successors(id) {
			switch colors[next] {
			case colorGray:
				// Back edge: the cycle runs from next's stack position to
				// the top of the stack.
				cycle := append([]string(nil), stack[stackPos[next]:]...)
				cycles = append(cycles, cycle)
			case colorWhite:
				visit(next)
			}
		}

		stack = stack[:len(stack)-1]
		delete(stackPos, id)
		colors[id] = colorBlack
	}

	for _, id := range g.Nodes() {
		if colors[id] == colorWhite {
			visit(id)
		}
	}

	canonical := canonicalizeCycles(cycles)

	if cycleDetectionLatency != nil {
		cycleDetectionLatency.Record(ctx, time.Since(start).Seconds())
	}
	if cyclesFound != nil {
		cyclesFound.Record(ctx, int64(len(canonical)))
	}
	span.SetAttributes(attribute.Int("registry.cycles_found", len(canonical)))

	return canonical
}

// canonicalizeCycles rotates each cycle so its lexicographically smallest
// node leads, drops duplicates, and sorts the result.
func canonicalizeCycles(cycles [][]string) [][]string {
	seen := make(map[string]struct{}, len(cycles))
	out := make([][]string, 0, len(cycles))

	for _, cycle := range cycles {
		rotated := rotateToSmallest(cycle)
		key := strings.Join(rotated, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rotated)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.Join(out[i], "\x1f") < strings.Join(out[j], "\x1f")
	})
	return out
}

func rotateToSmallest(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	smallest := 0
	for i, id := range cycle {
		if id < cycle[smallest] {
			smallest = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[smallest:]...)
	rotated = append(rotated, cycle[:smallest]...)
	return rotated
}
