// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadModel(t *testing.T) {
	ctx := context.Background()

	t.Run("loads elements across files in path order", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, "b_application.yaml", `
id: application.service.customer-svc
data:
  realizes: business.service.customer-mgmt
`)
		writeModelFile(t, dir, "a_business.yaml", `
id: business.service.customer-mgmt
layer: business
type: service
data:
  name: Customer Management
`)

		m, err := LoadModel(ctx, dir)
		require.NoError(t, err)
		require.Equal(t, 2, m.Len())

		elems := m.Elements()
		// a_business.yaml sorts before b_application.yaml.
		assert.Equal(t, "business.service.customer-mgmt", elems[0].ID)
		assert.Equal(t, "application.service.customer-svc", elems[1].ID)
	})

	t.Run("infers layer and type from the id", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, "model.yaml", `
id: technology.node.web-host
data:
  os: linux
`)

		m, err := LoadModel(ctx, dir)
		require.NoError(t, err)

		elem, ok := m.GetElement("technology.node.web-host")
		require.True(t, ok)
		assert.Equal(t, "technology", elem.Layer)
		assert.Equal(t, "node", elem.Type)

		osField, ok := elem.Data.Field("os")
		require.True(t, ok)
		s, _ := osField.AsString()
		assert.Equal(t, "linux", s)
	})

	t.Run("multi document files keep document order", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, "model.yaml", `
id: a.s.first
---
id: a.s.second
---
id: a.s.third
`)

		m, err := LoadModel(ctx, dir)
		require.NoError(t, err)

		elems := m.Elements()
		require.Len(t, elems, 3)
		assert.Equal(t, "a.s.first", elems[0].ID)
		assert.Equal(t, "a.s.third", elems[2].ID)
	})

	t.Run("recurses into subdirectories but skips hidden ones", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, filepath.Join("business", "core.yaml"), "id: business.service.core\n")
		writeModelFile(t, dir, filepath.Join(".git", "ignored.yaml"), "id: x.y.ignored\n")
		writeModelFile(t, dir, "readme.txt", "not a model file")

		m, err := LoadModel(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("empty directory errors", func(t *testing.T) {
		_, err := LoadModel(ctx, t.TempDir())
		assert.ErrorIs(t, err, ErrNoModelFiles)
	})

	t.Run("missing id fails the load", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, "model.yaml", "layer: business\ntype: service\n")

		_, err := LoadModel(ctx, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing an id")
	})

	t.Run("short id without explicit layer and type fails", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, "model.yaml", "id: billing\n")

		_, err := LoadModel(ctx, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fewer than 3 segments")
	})

	t.Run("malformed yaml fails the load", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, "good.yaml", "id: a.s.good\n")
		writeModelFile(t, dir, "bad.yaml", "id: [unclosed\n")

		_, err := LoadModel(ctx, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.yaml")
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		dir := t.TempDir()
		writeModelFile(t, dir, "model.yaml", "id: a.s.one\n")

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := LoadModel(cancelled, dir)
		assert.True(t, errors.Is(err, context.Canceled) || err == nil,
			"cancellation is racy with fast loads; an error must be context.Canceled")
	})
}
