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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/blueprint/services/blueprint/loader"
	"github.com/AleutianAI/blueprint/services/blueprint/validation"
)

// runWatch revalidates the model on every change burst until interrupted.
// The registry is rebuilt from scratch per burst: model loads are cheap
// relative to editing cadence and a fresh registry per element set is the
// engine's contract anyway.
func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	revalidate := func() {
		sess, err := loadSession(ctx)
		if err != nil {
			fmt.Println(colorize(ansiRed, err.Error()))
			return
		}
		findings := validation.New(sess.model, sess.reg).Validate(ctx)
		if len(findings) == 0 {
			fmt.Println(colorize(ansiGreen, "model is clean"))
			return
		}
		for _, finding := range findings {
			fmt.Printf("%s %s: %s\n", finding.Severity, finding.ElementID, finding.Message)
		}
	}

	revalidate()

	watcher, err := loader.NewWatcher(effectiveModelDir(), 0, func(changed []string) {
		fmt.Printf("\n%d file(s) changed, revalidating\n", len(changed))
		revalidate()
	})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	fmt.Printf("watching %s (ctrl-c to stop)\n", effectiveModelDir())
	<-ctx.Done()
	return nil
}
