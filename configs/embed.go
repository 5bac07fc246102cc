package configs

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Default is the embedded example config.
const Default = "tickets.yaml"

//go:embed *.yaml
var embeddedConfigs embed.FS

// Names returns the embedded config filenames, sorted.
func Names() []string {
	entries, err := fs.Glob(embeddedConfigs, "*.yaml")
	if err != nil {
		return nil
	}
	sort.Strings(entries)
	return entries
}

// Load returns the embedded config by filename.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("embedded config name is empty")
	}
	data, err := fs.ReadFile(embeddedConfigs, name)
	if err != nil {
		return nil, fmt.Errorf("read embedded config %q (available: %v): %w", name, Names(), err)
	}
	return data, nil
}
