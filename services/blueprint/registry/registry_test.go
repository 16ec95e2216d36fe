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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/refs"
)

func usageRef(source, target string) refs.Reference {
	return refs.Reference{
		SourceID:      source,
		TargetID:      target,
		PropertyPath:  "uses",
		ReferenceType: refs.TypeUsage,
	}
}

func TestRegistry_AddAndIndexes(t *testing.T) {
	r := New(nil)
	r.AddReference(usageRef("a.s.one", "a.s.two"))
	r.AddReference(usageRef("a.s.one", "a.s.three"))
	r.AddReference(refs.Reference{
		SourceID:      "a.s.two",
		TargetID:      "a.s.three",
		PropertyPath:  "realizes",
		ReferenceType: refs.TypeRealization,
	})

	assert.Equal(t, 3, r.Len())

	from := r.ReferencesFrom("a.s.one")
	require.Len(t, from, 2)
	assert.Equal(t, "a.s.two", from[0].TargetID)
	assert.Equal(t, "a.s.three", from[1].TargetID)

	to := r.ReferencesTo("a.s.three")
	require.Len(t, to, 2)
	assert.Equal(t, "a.s.one", to[0].SourceID)
	assert.Equal(t, "a.s.two", to[1].SourceID)

	assert.Len(t, r.ReferencesByType(refs.TypeRealization), 1)
	assert.Empty(t, r.ReferencesFrom("never.seen.id"))
	assert.Empty(t, r.ReferencesTo("never.seen.id"))
}

func TestRegistry_AddDeduplicates(t *testing.T) {
	r := New(nil)
	r.AddReference(usageRef("a.s.one", "a.s.two"))
	r.AddReference(usageRef("a.s.one", "a.s.two"))

	assert.Equal(t, 1, r.Len())
	assert.Len(t, r.ReferencesFrom("a.s.one"), 1)
}

func TestRegistry_RemoveReference(t *testing.T) {
	r := New(nil)
	r.AddReference(usageRef("a.s.one", "a.s.two"))
	r.AddReference(refs.Reference{
		SourceID:      "a.s.one",
		TargetID:      "a.s.two",
		PropertyPath:  "serves",
		ReferenceType: refs.TypeServing,
	})
	r.AddReference(usageRef("a.s.one", "a.s.three"))

	// Removes every edge between the pair, across property paths.
	r.RemoveReference("a.s.one", "a.s.two")

	assert.Equal(t, 1, r.Len())
	assert.Empty(t, r.ReferencesTo("a.s.two"))
	assert.Len(t, r.ReferencesFrom("a.s.one"), 1)
	assert.Empty(t, r.ReferencesByType(refs.TypeServing))

	// Removed edges can be re-added.
	r.AddReference(usageRef("a.s.one", "a.s.two"))
	assert.Equal(t, 2, r.Len())

	// Removing an absent pair is a no-op.
	r.RemoveReference("x.y.z", "a.s.one")
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_RegisterElementIdempotent(t *testing.T) {
	r := New(refs.NewExtractor(nil))

	elem := &model.Element{
		ID:    "application.service.a",
		Type:  "service",
		Layer: "application",
		Data: model.MapValue().
			Set("uses", model.StringValue("business.service.b")).
			Set("ownerRef", model.StringValue("business.actor.ops")),
	}

	r.RegisterElement(elem)
	require.Equal(t, 2, r.Len())

	r.RegisterElement(elem)
	assert.Equal(t, 2, r.Len(), "re-registering must not duplicate edges")

	// Nil extractor and nil element are both no-ops.
	New(nil).RegisterElement(elem)
	r.RegisterElement(nil)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_FindBrokenReferences(t *testing.T) {
	r := New(nil)
	r.AddReference(usageRef("a.s.one", "a.s.two"))
	r.AddReference(usageRef("a.s.one", "a.s.missing"))
	r.AddReference(usageRef("a.s.two", "a.s.gone"))

	valid := map[string]struct{}{
		"a.s.one": {},
		"a.s.two": {},
	}

	broken := r.FindBrokenReferences(valid)
	require.Len(t, broken, 2)
	assert.Equal(t, "a.s.missing", broken[0].TargetID)
	assert.Equal(t, "a.s.gone", broken[1].TargetID)

	// A source that is itself unknown does not make its edge broken; only
	// targets are checked.
	r2 := New(nil)
	r2.AddReference(usageRef("a.s.unknown", "a.s.one"))
	assert.Empty(t, r2.FindBrokenReferences(valid))
}

func TestRegistry_DependencyGraph(t *testing.T) {
	r := New(nil)
	r.AddReference(usageRef("a.s.one", "a.s.two"))
	r.AddReference(usageRef("a.s.two", "a.s.three"))
	r.AddReference(refs.Reference{
		SourceID:      "a.s.one",
		TargetID:      "a.s.two",
		PropertyPath:  "serves",
		ReferenceType: refs.TypeServing,
	})

	g := r.DependencyGraph()

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())
	assert.True(t, g.HasNode("a.s.three"), "targets count as nodes")
	assert.False(t, g.HasNode("a.s.four"))

	assert.Equal(t, []string{"a.s.one", "a.s.three", "a.s.two"}, g.Nodes())

	// Parallel edges collapse to one adjacency entry.
	assert.Equal(t, []string{"a.s.two"}, g.Successors("a.s.one"))
	assert.Equal(t, []string{"a.s.one"}, g.Predecessors("a.s.two"))
	assert.Empty(t, g.Successors("a.s.three"))

	// First registered type wins for the pair; unknown pairs fall back.
	assert.Equal(t, refs.TypeUsage, g.EdgeType("a.s.one", "a.s.two"))
	assert.Equal(t, refs.TypeAssociation, g.EdgeType("a.s.three", "a.s.one"))

	// Snapshot stays consistent after registry mutation.
	r.RemoveReference("a.s.two", "a.s.three")
	assert.Equal(t, 3, g.NodeCount(), "existing snapshot is immutable")
	assert.Equal(t, 2, r.DependencyGraph().NodeCount())
}
