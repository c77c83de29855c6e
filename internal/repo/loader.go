package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"drover/internal/group"
	"drover/internal/node"
	"drover/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	groupsDir      = "groups"
	nodesDir       = "nodes"
	groupsFileName = "groups.yaml"
	nodesFileName  = "nodes.yaml"
)

// DefaultConfigPath returns the default configuration directory,
// ~/.config/drover.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "drover"), nil
}

// Load builds a Repo from the given configuration directory. The
// returned Repo is fully wired (registry back-references injected) but
// not yet resolved; hierarchy errors such as cycles surface on the first
// closure query.
func Load(configPath string) (*Repo, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return nil, fmt.Errorf("config directory %s: %w", configPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config path %s is not a directory", configPath)
	}

	r := New(configPath)

	groupDicts, err := loadEntityDicts(configPath, groupsDir, groupsFileName)
	if err != nil {
		return nil, err
	}
	for name, attrs := range groupDicts {
		g, err := group.New(name, attrs)
		if err != nil {
			return nil, err
		}
		if err := r.AddGroup(g); err != nil {
			return nil, err
		}
	}

	nodeDicts, err := loadEntityDicts(configPath, nodesDir, nodesFileName)
	if err != nil {
		return nil, err
	}
	for name, attrs := range nodeDicts {
		n, err := node.New(name, attrs)
		if err != nil {
			return nil, err
		}
		if err := r.AddNode(n); err != nil {
			return nil, err
		}
	}

	logging.Info("Repo", "Loaded %d groups and %d nodes from %s",
		len(r.groups), len(r.nodes), configPath)
	return r, nil
}

// loadEntityDicts gathers raw attribute dictionaries for one entity type
// from both accepted forms: a per-entity file directory and a single
// mapping file. A name defined twice is an error.
func loadEntityDicts(configPath, dirName, fileName string) (map[string]map[string]interface{}, error) {
	dicts := make(map[string]map[string]interface{})

	bulkPath := filepath.Join(configPath, fileName)
	if data, err := os.ReadFile(bulkPath); err == nil {
		var bulk map[string]map[string]interface{}
		if err := yaml.Unmarshal(data, &bulk); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", bulkPath, err)
		}
		for name, attrs := range bulk {
			dicts[name] = attrs
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", bulkPath, err)
	}

	entityDir := filepath.Join(configPath, dirName)
	entries, err := os.ReadDir(entityDir)
	if err != nil {
		if os.IsNotExist(err) {
			return dicts, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", entityDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		filePath := filepath.Join(entityDir, entry.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		var attrs map[string]interface{}
		if err := yaml.Unmarshal(data, &attrs); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", filePath, err)
		}
		name := entryName(entry.Name())
		if _, exists := dicts[name]; exists {
			return nil, fmt.Errorf("entity '%s' defined more than once (%s)", name, filePath)
		}
		dicts[name] = attrs
	}
	return dicts, nil
}

func isYAMLFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func entryName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
