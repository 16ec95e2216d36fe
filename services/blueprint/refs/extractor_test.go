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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/schema"
)

func mustCatalog(t *testing.T, defs ...schema.ReferenceDefinition) *schema.Catalog {
	t.Helper()
	c, err := schema.NewCatalog(defs)
	require.NoError(t, err)
	return c
}

func TestExtractor_CatalogDeclared(t *testing.T) {
	catalog := mustCatalog(t,
		schema.ReferenceDefinition{
			Layer:         "application",
			ElementType:   "service",
			PropertyPath:  "realizes",
			TargetLayer:   "business",
			TargetType:    "service",
			ReferenceType: "realization",
			Required:      true,
			Cardinality:   schema.CardinalityOne,
		},
		schema.ReferenceDefinition{
			Layer:        "application",
			ElementType:  "service",
			PropertyPath: "uses",
			Cardinality:  schema.CardinalityArray,
		},
	)
	extractor := NewExtractor(catalog)

	elem := &model.Element{
		ID:    "application.service.customer-svc",
		Type:  "service",
		Layer: "application",
		Data: model.MapValue().
			Set("realizes", model.StringValue("business.service.customer-mgmt")).
			Set("uses", model.ListValue(
				model.StringValue("technology.database.customers"),
				model.StringValue("technology.queue.events"),
			)),
	}

	extracted := extractor.Extract(elem)
	require.Len(t, extracted, 3)

	assert.Equal(t, Reference{
		SourceID:      "application.service.customer-svc",
		TargetID:      "business.service.customer-mgmt",
		PropertyPath:  "realizes",
		ReferenceType: TypeRealization,
		Required:      true,
	}, extracted[0])

	assert.Equal(t, "technology.database.customers", extracted[1].TargetID)
	assert.Equal(t, "technology.queue.events", extracted[2].TargetID)
	// No explicit referenceType on the rule: classified from the property name.
	assert.Equal(t, TypeUsage, extracted[1].ReferenceType)
	assert.False(t, extracted[1].Required)
}

func TestExtractor_HeuristicScan(t *testing.T) {
	extractor := NewExtractor(nil)

	elem := &model.Element{
		ID:    "api.operation.get-customer",
		Type:  "operation",
		Layer: "api",
		Data: model.MapValue().
			Set("summary", model.StringValue("Fetch one customer")).
			Set("applicationServiceRef", model.StringValue("application.service.customer-svc")).
			Set("links", model.MapValue().
				Set("next", model.StringValue("api.operation.list-customers"))).
			Set("examples", model.ListValue(
				model.StringValue("data.entity.customer"),
				model.StringValue("not an id"),
			)).
			Set("version", model.StringValue("1.2.3")),
	}

	extracted := extractor.Extract(elem)

	byPath := make(map[string]Reference, len(extracted))
	for _, ref := range extracted {
		byPath[ref.PropertyPath] = ref
	}

	require.Contains(t, byPath, "applicationServiceRef")
	assert.Equal(t, TypeUsage, byPath["applicationServiceRef"].ReferenceType)

	require.Contains(t, byPath, "links.next")
	assert.Equal(t, "api.operation.list-customers", byPath["links.next"].TargetID)
	assert.Equal(t, TypeAssociation, byPath["links.next"].ReferenceType)

	// List entries record their index in the property path.
	require.Contains(t, byPath, "examples.0")
	assert.Equal(t, "data.entity.customer", byPath["examples.0"].TargetID)

	// Plain prose and dotted version strings are not references.
	assert.NotContains(t, byPath, "summary")
	assert.NotContains(t, byPath, "examples.1")
	assert.NotContains(t, byPath, "version")
}

func TestExtractor_RefKeyWithoutIDPattern(t *testing.T) {
	extractor := NewExtractor(nil)

	// Keys ending in Ref emit a reference even when the value does not
	// match the dotted-ID pattern.
	elem := &model.Element{
		ID:    "application.service.a",
		Type:  "service",
		Layer: "application",
		Data: model.MapValue().
			Set("schemaRef", model.StringValue("CustomerV2")),
	}

	extracted := extractor.Extract(elem)
	require.Len(t, extracted, 1)
	assert.Equal(t, "CustomerV2", extracted[0].TargetID)
	assert.Equal(t, TypeUsage, extracted[0].ReferenceType)
}

func TestExtractor_DeduplicatesCatalogAndScan(t *testing.T) {
	catalog := mustCatalog(t, schema.ReferenceDefinition{
		Layer:         "application",
		ElementType:   "service",
		PropertyPath:  "realizes",
		ReferenceType: "realization",
		Cardinality:   schema.CardinalityOne,
	})
	extractor := NewExtractor(catalog)

	// The catalog rule and the heuristic scan both find this property;
	// identity dedup keeps one reference.
	elem := &model.Element{
		ID:    "application.service.a",
		Type:  "service",
		Layer: "application",
		Data: model.MapValue().
			Set("realizes", model.StringValue("business.service.b")),
	}

	extracted := extractor.Extract(elem)
	require.Len(t, extracted, 1)
}

func TestExtractor_EdgeCases(t *testing.T) {
	extractor := NewExtractor(nil)

	t.Run("nil element", func(t *testing.T) {
		assert.Nil(t, extractor.Extract(nil))
	})

	t.Run("nil data", func(t *testing.T) {
		assert.Nil(t, extractor.Extract(&model.Element{ID: "a.b.c"}))
	})

	t.Run("pure function", func(t *testing.T) {
		elem := &model.Element{
			ID:    "application.service.a",
			Type:  "service",
			Layer: "application",
			Data: model.MapValue().
				Set("uses", model.StringValue("business.service.b")),
		}
		first := extractor.Extract(elem)
		second := extractor.Extract(elem)
		assert.Equal(t, first, second)
	})

	t.Run("self reference is kept", func(t *testing.T) {
		elem := &model.Element{
			ID:    "application.service.a",
			Type:  "service",
			Layer: "application",
			Data: model.MapValue().
				Set("uses", model.StringValue("application.service.a")),
		}
		extracted := extractor.Extract(elem)
		require.Len(t, extracted, 1)
		assert.Equal(t, elem.ID, extracted[0].TargetID)
	})
}
