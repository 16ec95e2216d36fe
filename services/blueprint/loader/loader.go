// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package loader reads model directories into an in-memory Model.
//
// A model directory holds YAML files, each containing one or more element
// documents. Files are parsed in parallel; the assembled model preserves
// a deterministic element order (files sorted by path, documents in file
// order) regardless of parse scheduling.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/blueprint/services/blueprint/model"
)

// ErrNoModelFiles is returned when the model directory holds no YAML files.
var ErrNoModelFiles = errors.New("no model files found")

// elementDoc is the on-disk YAML shape of one element document.
type elementDoc struct {
	ID    string       `yaml:"id"`
	Type  string       `yaml:"type"`
	Layer string       `yaml:"layer"`
	Data  *model.Value `yaml:"data"`
}

// LoadModel reads every *.yaml / *.yml file under dir (recursively) and
// assembles a Model.
//
// Elements must carry an id; layer and type fall back to the first two ID
// segments when omitted, which is the common shorthand in hand-written
// models. Parsing runs on up to NumCPU files concurrently via errgroup;
// the first parse error aborts the load.
func LoadModel(ctx context.Context, dir string) (*model.Model, error) {
	paths, err := modelFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoModelFiles, dir)
	}

	var mu sync.Mutex
	byPath := make(map[string][]*model.Element, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		path := path
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			elems, err := loadFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			byPath[path] = elems
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	m := model.New()
	for _, path := range paths {
		for _, elem := range byPath[path] {
			m.Add(elem)
		}
	}
	return m, nil
}

// modelFiles returns the sorted YAML file paths under dir.
func modelFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// loadFile parses all element documents in one YAML file.
func loadFile(path string) ([]*model.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	var elems []*model.Element
	decoder := yaml.NewDecoder(f)
	for docIndex := 0; ; docIndex++ {
		var doc elementDoc
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loader: parse %s document %d: %w", path, docIndex, err)
		}

		elem, err := docToElement(doc)
		if err != nil {
			return nil, fmt.Errorf("loader: %s document %d: %w", path, docIndex, err)
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

func docToElement(doc elementDoc) (*model.Element, error) {
	if doc.ID == "" {
		return nil, errors.New("element is missing an id")
	}

	layer, elemType := doc.Layer, doc.Type
	if layer == "" || elemType == "" {
		segments := strings.Split(doc.ID, ".")
		if len(segments) < 3 {
			return nil, fmt.Errorf("element %q needs explicit layer and type (id has fewer than 3 segments)", doc.ID)
		}
		if layer == "" {
			layer = segments[0]
		}
		if elemType == "" {
			elemType = segments[1]
		}
	}

	return &model.Element{
		ID:    doc.ID,
		Type:  elemType,
		Layer: layer,
		Data:  doc.Data,
	}, nil
}
