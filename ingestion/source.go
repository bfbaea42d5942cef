// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Source is a knowledge document to ingest.
type Source struct {
	// Name identifies the source; it is stored as the file_name metadata.
	Name string

	// Type is stored as the source_type metadata, such as "txt" or "md".
	Type string

	Content string
}

// supportedExtensions lists the file types LoadSources picks up in directories.
var supportedExtensions = []string{".txt", ".md", ".markdown"}

// LoadSource reads a text file.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Source{
		Name:    filepath.Base(path),
		Type:    strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Content: string(data),
	}, nil
}

// LoadSources reads files and the supported files found under directories,
// in lexical order.
func LoadSources(paths ...string) ([]*Source, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(p))) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}

	sources := make([]*Source, 0, len(files))
	for _, file := range files {
		src, err := LoadSource(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
