// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tc := range tests {
		if got := tc.level.String(); got != tc.expected {
			t.Errorf("Level(%d).String() = %q, expected %q", tc.level, got, tc.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if tc.wantErr != (err != nil) {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{
		Level:   LevelDebug,
		LogDir:  dir,
		Service: "testsvc",
		Quiet:   true,
	})
	defer logger.Close()

	logger.Info("model loaded", "elements", 12)
	logger.Debug("debug detail")

	name := "testsvc_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, `"msg":"model loaded"`) {
		t.Errorf("log file missing info entry: %s", content)
	}
	if !strings.Contains(content, `"elements":12`) {
		t.Errorf("log file missing structured attribute: %s", content)
	}
	if !strings.Contains(content, `"service":"testsvc"`) {
		t.Errorf("log file missing service attribute: %s", content)
	}
	if !strings.Contains(content, `"msg":"debug detail"`) {
		t.Errorf("debug entry filtered despite LevelDebug: %s", content)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{
		Level:  LevelWarn,
		LogDir: dir,
		Quiet:  true,
	})
	defer logger.Close()

	logger.Info("should be dropped")
	logger.Warn("should be kept")

	name := "blueprint_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	content := string(data)
	if strings.Contains(content, "should be dropped") {
		t.Error("info entry logged despite LevelWarn filter")
	}
	if !strings.Contains(content, "should be kept") {
		t.Error("warn entry missing")
	}
}

func TestClose_Idempotent(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Quiet: true})
	if err := logger.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Loggers without a file close cleanly too.
	if err := New(Config{Quiet: true}).Close(); err != nil {
		t.Errorf("Close without file failed: %v", err)
	}
}

func TestDefault_Singleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default must return the same logger instance")
	}
}
