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

import "strings"

// classifierRule maps a property-name fragment to a reference type.
// Rules are evaluated in order; the first match wins.
type classifierRule struct {
	fragment string
	refType  ReferenceType
}

// classifierRules is the fixed classification table. Order matters:
// "realizes" must win over the generic "uses" fallback behavior, and the
// table is kept explicit rather than scattering string checks inline.
var classifierRules = []classifierRule{
	{"realizes", TypeRealization},
	{"realizedby", TypeRealization},
	{"serves", TypeServing},
	{"provides", TypeServing},
	{"accesses", TypeAccess},
	{"uses", TypeUsage},
	{"dependson", TypeUsage},
}

// ClassifyProperty assigns a ReferenceType to a property name.
//
// Matching is case-insensitive on name fragments; property names ending in
// "Ref" or "-ref" classify as usage. Anything unmatched falls back to
// association. Pure function, never errors.
func ClassifyProperty(name string) ReferenceType {
	lower := strings.ToLower(name)

	for _, rule := range classifierRules {
		if strings.Contains(lower, rule.fragment) {
			return rule.refType
		}
	}

	if strings.HasSuffix(lower, "ref") {
		return TypeUsage
	}

	return TypeAssociation
}
