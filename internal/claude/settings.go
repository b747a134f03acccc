package claude

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SettingsFileName is the name of the Claude settings file.
const SettingsFileName = "settings.json"

// SettingsDir is the directory containing Claude settings.
const SettingsDir = ".claude"

// Settings represents a Claude settings file with flexible JSON structure.
// Uses map[string]interface{} to preserve unknown fields during modification.
type Settings struct {
	data     map[string]interface{}
	filePath string
}

// Load reads and parses Claude settings from the user's home directory.
// Returns a Settings instance even if the file doesn't exist (with empty
// data). Returns an error only for actual failures like permission errors
// or malformed JSON.
func Load() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return LoadFromPath(filepath.Join(homeDir, SettingsDir, SettingsFileName))
}

// LoadFromPath loads settings from a specific file path.
func LoadFromPath(settingsPath string) (*Settings, error) {
	s := &Settings{
		data:     make(map[string]interface{}),
		filePath: settingsPath,
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.data); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", settingsPath, err)
	}

	return s, nil
}

// FilePath returns the path to the settings file.
func (s *Settings) FilePath() string {
	return s.filePath
}

// Exists returns true if the settings file exists on disk.
func (s *Settings) Exists() bool {
	_, err := os.Stat(s.filePath)
	return err == nil
}

// getHooks returns the hooks object, creating it if necessary.
func (s *Settings) getHooks() map[string]interface{} {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	if !ok {
		hooks = make(map[string]interface{})
		s.data["hooks"] = hooks
	}
	return hooks
}

// eventEntries returns the matcher entries registered for the event.
func (s *Settings) eventEntries(event string) []interface{} {
	entries, _ := s.getHooks()[event].([]interface{})
	return entries
}

// commandsFor collects every hook command registered for the event.
func (s *Settings) commandsFor(event string) []string {
	var commands []string
	for _, entry := range s.eventEntries(event) {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		inner, _ := m["hooks"].([]interface{})
		for _, h := range inner {
			hm, ok := h.(map[string]interface{})
			if !ok {
				continue
			}
			if cmd, ok := hm["command"].(string); ok {
				commands = append(commands, cmd)
			}
		}
	}
	return commands
}

// HasHook checks if the command is registered for the event.
func (s *Settings) HasHook(event, command string) bool {
	for _, cmd := range s.commandsFor(event) {
		if cmd == command {
			return true
		}
	}
	return false
}

// AddHook registers the command for the event. The empty matcher runs
// the hook for every tool. Returns false when the command was already
// registered.
func (s *Settings) AddHook(event, command string) bool {
	if s.HasHook(event, command) {
		return false
	}

	hooks := s.getHooks()
	entry := map[string]interface{}{
		"matcher": "",
		"hooks": []interface{}{
			map[string]interface{}{
				"type":    "command",
				"command": command,
			},
		},
	}
	hooks[event] = append(s.eventEntries(event), entry)
	return true
}

// RemoveHooks removes every hook command starting with prefix across all
// events, pruning emptied entries. Returns the number of commands
// removed.
func (s *Settings) RemoveHooks(prefix string) int {
	hooks, ok := s.data["hooks"].(map[string]interface{})
	if !ok {
		return 0
	}

	removed := 0
	for event, raw := range hooks {
		entries, ok := raw.([]interface{})
		if !ok {
			continue
		}

		var keptEntries []interface{}
		for _, entry := range entries {
			m, ok := entry.(map[string]interface{})
			if !ok {
				keptEntries = append(keptEntries, entry)
				continue
			}

			inner, _ := m["hooks"].([]interface{})
			var keptInner []interface{}
			for _, h := range inner {
				hm, ok := h.(map[string]interface{})
				if ok {
					if cmd, ok := hm["command"].(string); ok && strings.HasPrefix(cmd, prefix) {
						removed++
						continue
					}
				}
				keptInner = append(keptInner, h)
			}

			if len(keptInner) == 0 {
				continue
			}
			m["hooks"] = keptInner
			keptEntries = append(keptEntries, m)
		}

		if len(keptEntries) == 0 {
			delete(hooks, event)
			continue
		}
		hooks[event] = keptEntries
	}

	if len(hooks) == 0 {
		delete(s.data, "hooks")
	}
	return removed
}

// Save writes the settings to disk using atomic write (temp file + rename).
// Creates the .claude directory if it doesn't exist. Written JSON is
// pretty-printed with indentation for human readability.
func (s *Settings) Save() error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}

	// Add trailing newline for POSIX compliance
	data = append(data, '\n')

	return atomicWrite(s.filePath, data)
}

// atomicWrite writes data to a file atomically using temp file + rename.
func atomicWrite(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	tmpFile, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", filePath, err)
	}

	// Clear tmpPath so defer doesn't try to remove the final file
	tmpPath = ""
	return nil
}
