// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command blueprint analyzes layered architecture documentation models.
//
// Usage:
//
//	blueprint validate -m ./model -c ./catalog.yaml
//	blueprint deps trace application.service.customer-svc -d both
//	blueprint impact business.service.customer-mgmt --max-depth 2
//	blueprint cycles -f json
//	blueprint watch -m ./model
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/blueprint/cmd/blueprint/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if telemetryOn || config.Global.Telemetry {
			shutdown, err := setupTelemetry(cmd.Context())
			if err != nil {
				log.Printf("telemetry disabled: %v", err)
				return nil
			}
			telemetryShutdown = shutdown
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			return telemetryShutdown(cmd.Context())
		}
		return nil
	}
}
