// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/refs"
)

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	elem, ok := sess.model.GetElement(args[0])
	if !ok {
		return fmt.Errorf("element %q not found", args[0])
	}

	result := struct {
		Element  *model.Element   `json:"element" yaml:"element"`
		Outgoing []refs.Reference `json:"outgoing" yaml:"outgoing"`
		Incoming []refs.Reference `json:"incoming" yaml:"incoming"`
	}{
		Element:  elem,
		Outgoing: sess.reg.ReferencesFrom(elem.ID),
		Incoming: sess.reg.ReferencesTo(elem.ID),
	}

	return render(result, func() {
		fmt.Printf("%s  [%s/%s]\n", colorize(ansiBold, elem.ID), elem.Layer, elem.Type)
		for _, ref := range result.Outgoing {
			fmt.Printf("  -> %s  (%s at %s)\n", ref.TargetID, ref.ReferenceType, ref.PropertyPath)
		}
		for _, ref := range result.Incoming {
			fmt.Printf("  <- %s  (%s at %s)\n", ref.SourceID, ref.ReferenceType, ref.PropertyPath)
		}
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	needle := strings.ToLower(args[0])
	var matches []*model.Element
	for _, elem := range sess.model.Elements() {
		if strings.Contains(strings.ToLower(elem.ID), needle) {
			matches = append(matches, elem)
		}
	}

	return render(matches, func() {
		if len(matches) == 0 {
			fmt.Printf("no elements matching %q\n", args[0])
			return
		}
		for _, elem := range matches {
			fmt.Printf("  %s  [%s/%s]\n", elem.ID, elem.Layer, elem.Type)
		}
	})
}
