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
	"context"
	"fmt"
	"time"

	"github.com/AleutianAI/blueprint/cmd/blueprint/config"
	"github.com/AleutianAI/blueprint/pkg/logging"
	"github.com/AleutianAI/blueprint/services/blueprint/deps"
	"github.com/AleutianAI/blueprint/services/blueprint/loader"
	"github.com/AleutianAI/blueprint/services/blueprint/model"
	"github.com/AleutianAI/blueprint/services/blueprint/refs"
	"github.com/AleutianAI/blueprint/services/blueprint/registry"
	"github.com/AleutianAI/blueprint/services/blueprint/schema"
)

// session bundles everything a command needs for one loaded model.
// Created fresh per invocation; discarded with it. There is no shared
// global registry.
type session struct {
	model   *model.Model
	catalog *schema.Catalog
	reg     *registry.Registry
	tracker *deps.Tracker
	logger  *logging.Logger
}

// effectiveModelDir resolves the model directory from flag then config.
func effectiveModelDir() string {
	if modelDir != "" {
		return modelDir
	}
	return config.Global.Model.Dir
}

func effectiveCatalogPath() string {
	if catalogPath != "" {
		return catalogPath
	}
	return config.Global.Model.CatalogPath
}

func effectiveFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	if config.Global.Output.Format != "" {
		return config.Global.Output.Format
	}
	return "text"
}

// loadSession loads the model and catalog, builds the registry by
// registering every element, and wires the tracker on top.
func loadSession(ctx context.Context) (*session, error) {
	level := logLevel
	if level == "" {
		level = config.Global.Logging.Level
	}
	parsed, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Config{
		Level:   parsed,
		LogDir:  config.Global.Logging.Dir,
		Service: "blueprint",
	})

	catalog := schema.Empty()
	if path := effectiveCatalogPath(); path != "" {
		// A malformed catalog is the one fail-fast condition: nothing
		// downstream may run with an invalid catalog.
		catalog, err = schema.LoadCatalog(path)
		if err != nil {
			return nil, fmt.Errorf("catalog rejected: %w", err)
		}
	}

	start := time.Now()
	m, err := loader.LoadModel(ctx, effectiveModelDir())
	if err != nil {
		return nil, err
	}

	reg := registry.New(refs.NewExtractor(catalog))
	for _, elem := range m.Elements() {
		reg.RegisterElement(elem)
	}

	logger.Debug("model loaded",
		"elements", m.Len(),
		"references", reg.Len(),
		"catalog_rules", catalog.Len(),
		"build_id", reg.BuildID(),
		"duration", time.Since(start))

	return &session{
		model:   m,
		catalog: catalog,
		reg:     reg,
		tracker: deps.NewTracker(m, reg),
		logger:  logger,
	}, nil
}
