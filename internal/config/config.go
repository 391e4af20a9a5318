// Package config manages named command profiles: their on-disk
// representation, name sanitization, and path resolution.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kboone/vigil/internal/logger"
)

const (
	// DefaultProfile is the identity used when a profile name is empty or
	// sanitizes to nothing.
	DefaultProfile = "default"

	// DefaultCommand is the command written into a freshly created profile.
	DefaultCommand = "echo configure command"

	// iconFileName is the stored name of a profile's icon copy.
	iconFileName = "icon.png"
)

// Profile holds a named command and its run-time preferences.
type Profile struct {
	Command     string `json:"command"`
	Autostart   bool   `json:"autostart,omitempty"`
	IconPath    string `json:"icon_path,omitempty"`
	LogToFile   bool   `json:"log_to_file,omitempty"`
	LogFilePath string `json:"log_file_path,omitempty"`

	mu       sync.RWMutex
	name     string // sanitized identity
	filePath string
}

// SanitizeName collapses a profile name to its identity: ASCII
// alphanumerics, '-' and '_' pass through, everything else becomes '_'.
// An empty result collapses to DefaultProfile.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return DefaultProfile
	}
	return b.String()
}

// baseDir returns the vigil state directory (~/.vigil).
func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vigil"), nil
}

// ProfilePath returns the config file path for a profile name.
// The name is sanitized first, so load and save always agree on identity.
func ProfilePath(name string) (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles", SanitizeName(name)+".json"), nil
}

// LockPath returns the lock file path guarding a profile against being
// supervised by two vigil instances at once.
func LockPath(name string) (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles", SanitizeName(name)+".lock"), nil
}

// DefaultLogFilePath returns the default output mirror path for a profile.
func DefaultLogFilePath(name string) (string, error) {
	dir, err := LogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SanitizeName(name)+".log"), nil
}

// LogsDir returns the directory holding per-profile output mirrors.
func LogsDir() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// IconPathFor returns the stored icon path for a profile.
func IconPathFor(name string) (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "icons", SanitizeName(name), iconFileName), nil
}

// Load reads a profile by name, creating it with defaults on first
// reference. A corrupt file is reported and replaced by defaults in memory
// (not on disk), matching the recover-don't-crash policy for this layer.
func Load(name string) (*Profile, error) {
	path, err := ProfilePath(name)
	if err != nil {
		return nil, err
	}
	return LoadPath(SanitizeName(name), path)
}

// LoadPath reads a profile from an explicit file path. Exposed so tests and
// tooling can work against temp directories.
func LoadPath(name, path string) (*Profile, error) {
	p := &Profile{
		Command:  DefaultCommand,
		name:     name,
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First reference to an unseen identity: write the defaults.
		if err := p.Save(); err != nil {
			return nil, fmt.Errorf("failed to create profile %s: %w", name, err)
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, p); err != nil {
		logger.Warn("failed to parse profile %s at %s: %v", name, path, err)
		return &Profile{Command: DefaultCommand, name: name, filePath: path}, nil
	}

	return p, nil
}

// Save writes the profile to disk, creating parent directories as needed.
func (p *Profile) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p, "", "  ")
	path := p.filePath
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Name returns the sanitized profile identity.
func (p *Profile) Name() string {
	return p.name
}

// FilePath returns the on-disk location of this profile.
func (p *Profile) FilePath() string {
	return p.filePath
}

// GetCommand returns the profile's command string.
func (p *Profile) GetCommand() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Command
}

// SetCommand updates the profile's command string.
func (p *Profile) SetCommand(command string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Command = command
}

// GetAutostart returns whether the command starts with the app.
func (p *Profile) GetAutostart() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Autostart
}

// SetAutostart updates the autostart flag.
func (p *Profile) SetAutostart(autostart bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Autostart = autostart
}

// GetLogToFile returns whether output mirroring is enabled.
func (p *Profile) GetLogToFile() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.LogToFile
}

// EnableLogFile enables output mirroring. An empty path keeps whatever path
// is already configured (or the default, resolved at write time).
func (p *Profile) EnableLogFile(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LogToFile = true
	if path != "" {
		p.LogFilePath = path
	}
}

// SetLogToFile updates the mirroring flag without touching the path.
func (p *Profile) SetLogToFile(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LogToFile = enabled
}

// ResolveLogFilePath returns the output mirror path for this profile, or ""
// when mirroring is disabled. Falls back to the default per-profile path
// when mirroring is enabled but no explicit path is set.
func (p *Profile) ResolveLogFilePath() string {
	p.mu.RLock()
	enabled := p.LogToFile
	path := p.LogFilePath
	name := p.name
	p.mu.RUnlock()

	if !enabled {
		return ""
	}
	if path != "" {
		return path
	}
	def, err := DefaultLogFilePath(name)
	if err != nil {
		logger.Warn("failed to resolve default log path for %s: %v", name, err)
		return ""
	}
	return def
}

// GetIconPath returns the stored icon path, "" when no icon is set.
func (p *Profile) GetIconPath() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.IconPath
}

// SetIcon copies the file at source into the profile's icon slot and
// records the stored path in the profile.
func (p *Profile) SetIcon(source string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("unable to read icon file: %w", err)
	}

	target, err := IconPathFor(p.name)
	if err != nil {
		return fmt.Errorf("unable to resolve icon storage path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("unable to create icon dir: %w", err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("unable to store icon copy: %w", err)
	}

	p.mu.Lock()
	p.IconPath = target
	p.mu.Unlock()
	return nil
}

// ListProfiles returns the sanitized names of all profiles on disk.
func ListProfiles() ([]string, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(dir, "profiles"))
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	return names, nil
}

// ClearLogs removes all per-profile output mirrors under the default logs
// directory. Returns the number of files removed.
func ClearLogs() (int, error) {
	dir, err := LogsDir()
	if err != nil {
		return 0, err
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, path := range matches {
		if err := os.Remove(path); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}
