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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ImpactAnalysis returns the set of element IDs that depend on the given
// element, directly or transitively.
//
// Description:
//
//	Breadth-first search over the reverse edge direction of a fresh graph
//	snapshot, bounded by maxDepth hops. maxDepth <= 0 means unbounded;
//	maxDepth of 1 yields exactly the direct in-edge predecessors. The
//	start element itself is excluded from the result.
//
// Inputs:
//
//	ctx - Context for tracing. Traversal itself is bounded by the finite
//	      node count, so no cancellation is needed mid-walk.
//	elementID - The element whose dependents are wanted. Unknown IDs
//	      yield an empty set, not an error.
//	maxDepth - Hop bound; <= 0 for the full transitive closure.
//
// Outputs:
//
//	map[string]struct{} - IDs of all transitively dependent elements.
func (r *Registry) ImpactAnalysis(ctx context.Context, elementID string, maxDepth int) map[string]struct{} {
	start := time.Now()
	_ = initMetrics()

	ctx, span := tracer.Start(ctx, "registry.ImpactAnalysis",
		trace.WithAttributes(
			attribute.String("registry.build_id", r.buildID),
			attribute.String("element.id", elementID),
			attribute.Int("max_depth", maxDepth),
		))
	defer span.End()

	g := r.DependencyGraph()
	impacted := make(map[string]struct{})

	if !g.HasNode(elementID) {
		span.SetAttributes(attribute.Int("impact.affected", 0))
		return impacted
	}

	type frontierEntry struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{elementID: {}}
	queue := []frontierEntry{{id: elementID, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if maxDepth > 0 && current.depth >= maxDepth {
			continue
		}

		for _, pred := range g.Predecessors(current.id) {
			if _, done := visited[pred]; done {
				continue
			}
			visited[pred] = struct{}{}
			impacted[pred] = struct{}{}
			queue = append(queue, frontierEntry{id: pred, depth: current.depth + 1})
		}
	}

	if impactLatency != nil {
		impactLatency.Record(ctx, time.Since(start).Seconds())
	}
	if impactedElements != nil {
		impactedElements.Record(ctx, int64(len(impacted)))
	}
	span.SetAttributes(attribute.Int("impact.affected", len(impacted)))

	return impacted
}
