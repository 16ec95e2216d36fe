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
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func runCycles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	cycles := sess.reg.FindCircularDependencies(ctx)

	return render(cycles, func() {
		if len(cycles) == 0 {
			fmt.Println(colorize(ansiGreen, "no circular dependencies"))
			return
		}
		for i, cycle := range cycles {
			closed := append(append([]string(nil), cycle...), cycle[0])
			fmt.Printf("[%d] %s\n", i+1, strings.Join(closed, " -> "))
		}
	})
}

func runImpact(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	impacted := sess.reg.ImpactAnalysis(ctx, args[0], impactMaxDepth)

	ids := make([]string, 0, len(impacted))
	for id := range impacted {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return render(ids, func() {
		if len(ids) == 0 {
			fmt.Printf("nothing depends on %s\n", args[0])
			return
		}
		fmt.Printf("changing %s affects %d element(s):\n", colorize(ansiBold, args[0]), len(ids))
		for _, id := range ids {
			fmt.Printf("  %s\n", id)
		}
	})
}

func runHubs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	hubs := sess.tracker.HubElements(hubThreshold)

	return render(hubs, func() {
		if len(hubs) == 0 {
			fmt.Printf("no elements with degree >= %d\n", hubThreshold)
			return
		}
		for _, hub := range hubs {
			fmt.Printf("%4d  %s\n", hub.Degree, hub.ID)
		}
	})
}

func runOrphans(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	orphans := sess.tracker.OrphanedElements()

	return render(orphans, func() {
		if len(orphans) == 0 {
			fmt.Println("no orphaned elements")
			return
		}
		for _, elem := range orphans {
			fmt.Printf("  %s  [%s/%s]\n", elem.ID, elem.Layer, elem.Type)
		}
	})
}
