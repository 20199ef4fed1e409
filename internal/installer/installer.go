// Package installer registers the server in the Cursor MCP configuration
package installer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ServerKey is the entry name under mcpServers
const ServerKey = "light-mcp"

const serversField = "mcpServers"

var (
	// ErrNotInstalled is returned by Uninstall when the entry is absent
	ErrNotInstalled = errors.New("light-mcp is not installed")
	// ErrNoConfig is returned by Uninstall when the config file does not exist
	ErrNoConfig = errors.New("no Cursor MCP configuration found")
)

// ServerEntry is one mcpServers entry
type ServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// DefaultEntry launches the running executable in stdio mode
func DefaultEntry() (ServerEntry, error) {
	exe, err := os.Executable()
	if err != nil {
		return ServerEntry{}, fmt.Errorf("failed to resolve executable: %w", err)
	}
	return ServerEntry{Command: exe, Args: []string{"serve"}}, nil
}

// Installer edits one mcp.json file
type Installer struct {
	path string
	log  zerolog.Logger
}

// New creates an installer for the config file at path
func New(path string, log zerolog.Logger) *Installer {
	return &Installer{path: path, log: log.With().Str("component", "installer").Logger()}
}

// Path returns the config file location
func (i *Installer) Path() string {
	return i.path
}

// Install adds or replaces the light-mcp entry, keeping every other key
func (i *Installer) Install(entry ServerEntry) error {
	if err := os.MkdirAll(filepath.Dir(i.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	doc, servers, err := i.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal server entry: %w", err)
	}
	servers[ServerKey] = raw

	return i.save(doc, servers)
}

// Uninstall removes the light-mcp entry
func (i *Installer) Uninstall() error {
	if _, err := os.Stat(i.path); errors.Is(err, os.ErrNotExist) {
		return ErrNoConfig
	}

	doc, servers, err := i.read()
	if err != nil {
		return err
	}
	if _, ok := servers[ServerKey]; !ok {
		return ErrNotInstalled
	}
	delete(servers, ServerKey)

	return i.save(doc, servers)
}

// Installed reports whether the entry is present
func (i *Installer) Installed() (bool, error) {
	_, servers, err := i.read()
	if err != nil {
		return false, err
	}
	_, ok := servers[ServerKey]
	return ok, nil
}

// read loads the config. A missing or unparsable file yields an empty one.
func (i *Installer) read() (map[string]json.RawMessage, map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	servers := map[string]json.RawMessage{}

	data, err := os.ReadFile(i.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, servers, nil
		}
		return nil, nil, fmt.Errorf("failed to read %s: %w", i.path, err)
	}

	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		i.log.Warn().Err(err).Str("path", i.path).Msg("Invalid mcp.json, creating new one")
		return map[string]json.RawMessage{}, servers, nil
	}

	if raw, ok := doc[serversField]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil || servers == nil {
			i.log.Warn().Err(err).Str("path", i.path).Msg("Invalid mcpServers field, replacing it")
			servers = map[string]json.RawMessage{}
		}
	}
	return doc, servers, nil
}

// save writes config with backup + atomic write
func (i *Installer) save(doc, servers map[string]json.RawMessage) error {
	rawServers, err := json.Marshal(servers)
	if err != nil {
		return fmt.Errorf("failed to marshal servers: %w", err)
	}
	doc[serversField] = rawServers

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := backupConfig(i.path); err != nil {
		i.log.Warn().Err(err).Msg("failed to create backup")
	}

	if err := atomicWrite(i.path, append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s: %w", i.path, err)
	}
	return nil
}

func backupConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // First run, no backup needed
		}
		return err
	}
	return os.WriteFile(path+".bak", data, 0644)
}

func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
