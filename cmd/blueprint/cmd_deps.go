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

	"github.com/AleutianAI/blueprint/services/blueprint/deps"
)

func runDepsTrace(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	dir, err := deps.ParseDirection(traceDirection)
	if err != nil {
		return err
	}

	elems := sess.tracker.TraceDependencies(ctx, args[0], dir, traceMaxDepth)

	return render(elems, func() {
		if len(elems) == 0 {
			fmt.Printf("no dependencies found for %s (direction %s)\n", args[0], dir)
			return
		}
		fmt.Printf("%s (%s):\n", colorize(ansiBold, args[0]), dir)
		for _, elem := range elems {
			fmt.Printf("  %s  [%s/%s]\n", elem.ID, elem.Layer, elem.Type)
		}
	})
}

func runDepsPaths(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	paths := sess.tracker.FindDependencyPaths(ctx, args[0], args[1])

	return render(paths, func() {
		if len(paths) == 0 {
			fmt.Printf("no path from %s to %s\n", args[0], args[1])
			return
		}
		for _, path := range paths {
			fmt.Printf("[%d] %s\n", path.Depth, strings.Join(path.Nodes, " -> "))
			fmt.Printf("    via %s\n", strings.Join(path.RelationshipTypes, ", "))
		}
	})
}

func runDepsLayers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	layers := sess.tracker.DependencyLayers(ctx, args[0])

	return render(layers, func() {
		if len(layers) == 0 {
			fmt.Printf("nothing connected to %s\n", args[0])
			return
		}
		names := make([]string, 0, len(layers))
		for layer := range layers {
			names = append(names, layer)
		}
		sort.Strings(names)
		for _, layer := range names {
			fmt.Printf("%s:\n", colorize(ansiBold, layer))
			for _, id := range layers[layer] {
				fmt.Printf("  %s\n", id)
			}
		}
	})
}
