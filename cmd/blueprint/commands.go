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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	modelDir    string
	catalogPath string
	outputFmt   string
	logLevel    string
	noColor     bool
	telemetryOn bool

	traceDirection string
	traceMaxDepth  int
	impactMaxDepth int
	hubThreshold   int

	rootCmd = &cobra.Command{
		Use:   "blueprint",
		Short: "A cli to analyze layered architecture documentation models",
		Long: `Blueprint manages architecture documentation as typed, layered
elements with cross-references, and answers dependency questions
about them: what an element depends on, what depends on it, which
references are broken, and where the cycles are.`,
		SilenceUsage: true,
	}

	// --- Validation ---
	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Report broken references and circular dependencies",
		RunE:  runValidate, // Defined in cmd_validate.go
	}

	// --- Dependency Tracing ---
	depsCmd = &cobra.Command{
		Use:   "deps",
		Short: "Trace dependencies through the reference graph",
	}
	depsTraceCmd = &cobra.Command{
		Use:   "trace [element-id]",
		Short: "List the elements reachable from an element",
		Args:  cobra.ExactArgs(1),
		RunE:  runDepsTrace, // Defined in cmd_deps.go
	}
	depsPathsCmd = &cobra.Command{
		Use:   "paths [source-id] [target-id]",
		Short: "Enumerate dependency paths between two elements",
		Args:  cobra.ExactArgs(2),
		RunE:  runDepsPaths, // Defined in cmd_deps.go
	}
	depsLayersCmd = &cobra.Command{
		Use:   "layers [element-id]",
		Short: "Group everything connected to an element by layer",
		Args:  cobra.ExactArgs(1),
		RunE:  runDepsLayers, // Defined in cmd_deps.go
	}

	// --- Graph Analysis ---
	cyclesCmd = &cobra.Command{
		Use:   "cycles",
		Short: "Detect circular dependencies",
		RunE:  runCycles, // Defined in cmd_analyze.go
	}
	impactCmd = &cobra.Command{
		Use:   "impact [element-id]",
		Short: "List the elements that depend on an element, transitively",
		Args:  cobra.ExactArgs(1),
		RunE:  runImpact, // Defined in cmd_analyze.go
	}
	hubsCmd = &cobra.Command{
		Use:   "hubs",
		Short: "List highly connected elements",
		RunE:  runHubs, // Defined in cmd_analyze.go
	}
	orphansCmd = &cobra.Command{
		Use:   "orphans",
		Short: "List elements with no references in or out",
		RunE:  runOrphans, // Defined in cmd_analyze.go
	}

	// --- Queries ---
	findCmd = &cobra.Command{
		Use:   "find [element-id]",
		Short: "Show one element with its outgoing and incoming references",
		Args:  cobra.ExactArgs(1),
		RunE:  runFind, // Defined in cmd_query.go
	}
	searchCmd = &cobra.Command{
		Use:   "search [substring]",
		Short: "List elements whose ID contains a substring",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch, // Defined in cmd_query.go
	}

	// --- Watch ---
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Revalidate the model whenever its files change",
		RunE:  runWatch, // Defined in cmd_watch.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelDir, "model", "m", "", "model directory (default from config)")
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "reference catalog file (default from config)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "format", "f", "", "output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&telemetryOn, "telemetry", false, "emit OpenTelemetry traces and metrics to stdout")

	depsTraceCmd.Flags().StringVarP(&traceDirection, "direction", "d", "up", "trace direction: up, down or both")
	depsTraceCmd.Flags().IntVar(&traceMaxDepth, "max-depth", 0, "hop bound, 0 for unbounded")
	impactCmd.Flags().IntVar(&impactMaxDepth, "max-depth", 0, "hop bound, 0 for unbounded")
	hubsCmd.Flags().IntVarP(&hubThreshold, "threshold", "t", 3, "minimum total degree")

	depsCmd.AddCommand(depsTraceCmd, depsPathsCmd, depsLayersCmd)
	rootCmd.AddCommand(validateCmd, depsCmd, cyclesCmd, impactCmd, hubsCmd, orphansCmd, findCmd, searchCmd, watchCmd)
}
