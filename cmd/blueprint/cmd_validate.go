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

	"github.com/AleutianAI/blueprint/services/blueprint/validation"
)

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	findings := validation.New(sess.model, sess.reg).Validate(ctx)

	report := struct {
		Elements   int                  `json:"elements" yaml:"elements"`
		References int                  `json:"references" yaml:"references"`
		Findings   []validation.Finding `json:"findings" yaml:"findings"`
	}{
		Elements:   sess.model.Len(),
		References: sess.reg.Len(),
		Findings:   findings,
	}

	if err := render(report, func() {
		fmt.Printf("%d elements, %d references\n", report.Elements, report.References)
		if len(findings) == 0 {
			fmt.Println(colorize(ansiGreen, "model is clean"))
			return
		}
		for _, finding := range findings {
			tag := colorize(ansiYellow, string(finding.Severity))
			if finding.Severity == validation.SeverityError {
				tag = colorize(ansiRed, string(finding.Severity))
			}
			fmt.Printf("%s %s: %s\n", tag, finding.ElementID, finding.Message)
			if finding.FixSuggestion != "" {
				fmt.Printf("  fix: %s\n", finding.FixSuggestion)
			}
		}
	}); err != nil {
		return err
	}

	for _, finding := range findings {
		if finding.Severity == validation.SeverityError {
			return fmt.Errorf("validation failed with %d finding(s)", len(findings))
		}
	}
	return nil
}
