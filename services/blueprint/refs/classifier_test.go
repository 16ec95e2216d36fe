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

import "testing"

func TestClassifyProperty(t *testing.T) {
	tests := []struct {
		name     string
		expected ReferenceType
	}{
		{"realizes", TypeRealization},
		{"realizedBy", TypeRealization},
		{"serves", TypeServing},
		{"provides", TypeServing},
		{"providesService", TypeServing},
		{"accesses", TypeAccess},
		{"uses", TypeUsage},
		{"dependsOn", TypeUsage},
		{"applicationServiceRef", TypeUsage},
		{"owner-ref", TypeUsage},
		{"ref", TypeUsage},
		{"description", TypeAssociation},
		{"relatedTo", TypeAssociation},
		{"", TypeAssociation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyProperty(tc.name); got != tc.expected {
				t.Errorf("ClassifyProperty(%q) = %q, expected %q", tc.name, got, tc.expected)
			}
		})
	}
}

func TestReference_Key(t *testing.T) {
	a := Reference{SourceID: "x.y.a", TargetID: "x.y.b", PropertyPath: "uses", ReferenceType: TypeUsage}
	same := Reference{SourceID: "x.y.a", TargetID: "x.y.b", PropertyPath: "uses", ReferenceType: TypeUsage, Required: true}
	differentPath := Reference{SourceID: "x.y.a", TargetID: "x.y.b", PropertyPath: "serves", ReferenceType: TypeUsage}

	if a.Key() != same.Key() {
		t.Error("Required must not participate in reference identity")
	}
	if a.Key() == differentPath.Key() {
		t.Error("references at different property paths must have distinct identities")
	}
}
