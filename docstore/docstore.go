// Package docstore reads the reference documents that ground every answer.
// Documents live in one flat directory and are re-read on each request, so a
// file dropped into the directory is picked up by the very next question.
package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Document struct {
	Name    string
	Content string
}

type Loader struct {
	dir  string
	exts map[string]struct{}
}

// NewLoader builds a loader over dir that accepts files whose extension is in
// extensions (matched case-insensitively, with or without the leading dot).
func NewLoader(dir string, extensions []string) *Loader {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}

	return &Loader{dir: dir, exts: exts}
}

// Load returns the content of every qualifying file, in directory enumeration
// order. Subdirectories are not descended into, and .json files are returned
// as opaque text.
func (l *Loader) Load(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read documents directory: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := l.exts[ext]; !ok {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())

		var content string
		if ext == ".pdf" {
			content, err = extractPDFText(path)
		} else {
			content, err = readTextFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("load document %s: %w", entry.Name(), err)
		}

		docs = append(docs, Document{Name: entry.Name(), Content: content})
	}

	return docs, nil
}

// Names lists the qualifying file names without reading their contents.
func (l *Loader) Names(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read documents directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		if _, ok := l.exts[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
