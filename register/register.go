// Package register adds heatree's MCP server to an MCP client config file.
package register

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Scope selects which client config file is edited.
type Scope string

const (
	ScopeProject Scope = "project" // <directory>/.mcp.json
	ScopeUser    Scope = "user"    // ~/.claude.json
)

// ParseScope validates a scope name.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeProject, ScopeUser:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown scope %q (must be %q or %q)", s, ScopeProject, ScopeUser)
}

// ServerEntry is one mcpServers item.
type ServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// Options describes a registration.
type Options struct {
	Scope      Scope
	Directory  string   // project directory; also the tree the server analyzes for ScopeProject
	ServerName string   // key under mcpServers
	BinaryPath string   // empty means the running executable
	ExtraArgs  []string // forwarded after "mcp <path>"
}

// Register writes the server entry and returns the config file path.
func Register(opts Options) (string, error) {
	binaryPath := opts.BinaryPath
	if binaryPath == "" {
		p, err := detectBinaryPath()
		if err != nil {
			return "", err
		}
		binaryPath = p
	}

	directory := opts.Directory
	if directory == "" {
		directory = "."
	}
	absDir, err := filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("resolving directory %s: %w", directory, err)
	}

	configPath, err := ConfigPath(opts.Scope, absDir)
	if err != nil {
		return "", err
	}

	serverArgs := []string{"mcp"}
	if opts.Scope == ScopeProject {
		serverArgs = append(serverArgs, absDir)
	}
	serverArgs = append(serverArgs, opts.ExtraArgs...)

	entry := buildEntry(runtime.GOOS, binaryPath, serverArgs)
	if err := writeConfig(configPath, opts.ServerName, entry); err != nil {
		return "", err
	}
	return configPath, nil
}

// ConfigPath returns the client config file for a scope.
func ConfigPath(scope Scope, directory string) (string, error) {
	switch scope {
	case ScopeProject:
		return filepath.Join(directory, ".mcp.json"), nil
	case ScopeUser:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(homeDir, ".claude.json"), nil
	}
	return "", fmt.Errorf("unknown scope %q", scope)
}

func detectBinaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", exe, err)
	}
	return resolved, nil
}

// buildEntry wraps the binary in cmd /C on Windows.
func buildEntry(goos, binaryPath string, serverArgs []string) ServerEntry {
	if goos == "windows" {
		return ServerEntry{
			Command: "cmd",
			Args:    append([]string{"/C", binaryPath}, serverArgs...),
		}
	}
	return ServerEntry{Command: binaryPath, Args: serverArgs}
}

// writeConfig sets mcpServers[serverName] and keeps every other key. The
// file is replaced atomically.
func writeConfig(configPath string, serverName string, entry ServerEntry) error {
	config := map[string]any{}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("parsing existing config %s: %w", configPath, err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("reading config %s: %w", configPath, err)
	}

	servers, ok := config["mcpServers"]
	if !ok {
		servers = map[string]any{}
		config["mcpServers"] = servers
	}
	serversMap, ok := servers.(map[string]any)
	if !ok {
		return fmt.Errorf("mcpServers in %s is not an object", configPath)
	}
	serversMap[serverName] = entry

	output, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	output = append(output, '\n')

	configDir := filepath.Dir(configPath)
	tmpFile, err := os.CreateTemp(configDir, ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", configDir, err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(output); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, configPath, err)
	}
	return nil
}
