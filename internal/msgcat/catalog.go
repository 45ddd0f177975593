package msgcat

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultMessagesFile = "messages.en.yaml"

//go:embed messages.en.yaml
var defaultFiles embed.FS

// Catalog holds the user-visible message templates, keyed by flattened dot keys
// such as "errors.no_active_war". Templates are rendered with text/template and
// a missing data key is an error.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]string
}

// New loads the embedded English messages, then applies any YAML overrides found in overrideDir
func New(overrideDir string) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]string)}

	raw, err := fs.ReadFile(defaultFiles, defaultMessagesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded messages: %w", err)
	}
	if err := c.apply(raw); err != nil {
		return nil, fmt.Errorf("failed to parse embedded messages: %w", err)
	}

	if strings.TrimSpace(overrideDir) != "" {
		if err := c.applyDir(overrideDir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// applyDir loads every .yaml/.yml file in dir in name order.
// The same key defined by two override files is an error.
func (c *Catalog) applyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read messages dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	seen := make(map[string]string)
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		flat, err := flatten(raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
		for key := range flat {
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("duplicate message key %q in %s and %s", key, prev, name)
			}
			seen[key] = name
		}
		c.merge(flat)
	}
	return nil
}

func (c *Catalog) apply(raw []byte) error {
	flat, err := flatten(raw)
	if err != nil {
		return err
	}
	c.merge(flat)
	return nil
}

func (c *Catalog) merge(flat map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, value := range flat {
		c.templates[key] = value
	}
}

func flatten(raw []byte) (map[string]string, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	flat := make(map[string]string)
	if err := flattenInto(tree, "", flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func flattenInto(node any, prefix string, out map[string]string) error {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flattenInto(child, key, out); err != nil {
				return err
			}
		}
		return nil
	case string:
		if prefix == "" {
			return errors.New("message without a key")
		}
		out[prefix] = v
		return nil
	case nil:
		return nil
	default:
		// only string leaves
		return fmt.Errorf("unsupported value at %s: %T", prefix, v)
	}
}

// Has reports whether a template exists for key
func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.templates[key]
	return ok
}

// Render executes the template stored under key with data.
// Callers must have a fallback for the error case.
func (c *Catalog) Render(key string, data any) (string, error) {
	c.mu.RLock()
	text, ok := c.templates[strings.TrimSpace(key)]
	c.mu.RUnlock()
	if !ok || strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("message template not found: %s", key)
	}

	tpl, err := template.New(key).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse message %s: %w", key, err)
	}

	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render message %s: %w", key, err)
	}
	return b.String(), nil
}
