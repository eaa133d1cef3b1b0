package migration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"
)

var fileTemplate = template.Must(template.New("migration").Parse(`-- Migration: {{.Name}}{{if .Down}} (rollback){{end}}
-- Created: {{.Created}}
{{if .Down}}
-- Reverse the statements of {{.Base}}.up.sql
{{else}}
-- Write the schema change here
{{end}}`))

// File is a created migration pair
type File struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9]+`)
	strayChars = regexp.MustCompile(`[^a-z0-9 _-]`)
)

// Create writes an empty <timestamp>_<name>.up.sql / .down.sql pair
func Create(dir, name string, now time.Time) (*File, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, errors.New("migration name must contain letters or digits")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := now.UTC().Format("20060102150405")
	base := version + "_" + slug
	f := &File{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(dir, base+".up.sql"),
		DownPath: filepath.Join(dir, base+".down.sql"),
	}

	created := now.UTC().Format(time.RFC3339)
	if err := writeFile(f.UpPath, name, base, created, false); err != nil {
		return nil, err
	}
	if err := writeFile(f.DownPath, name, base, created, true); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, err
	}
	return f, nil
}

func writeFile(path, name, base, created string, down bool) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	return fileTemplate.Execute(out, map[string]any{
		"Name":    name,
		"Base":    base,
		"Created": created,
		"Down":    down,
	})
}

// sanitizeName lowercases name and joins its words with underscores
func sanitizeName(name string) string {
	s := strayChars.ReplaceAllString(strings.ToLower(name), "")
	return strings.Trim(nonWord.ReplaceAllString(s, "_"), "_")
}

// List returns the base names of the up migrations in dir, oldest first
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries)/2)
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok && !e.IsDir() {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}
