// Package loader resolves and parses the participants file.
//
// Resolution order mirrors the tool's documented lookup: an explicit path
// wins (and must exist), then the SECRET_SANTA_PARTICIPANTS environment
// variable, then resources/participants.json in the working directory, then
// the committed resources/participants.json.example. Files are parsed as
// YAML when the extension is .yaml/.yml, JSON otherwise.
//
// Entries are either objects {"name": ..., "exclusions": [...]} or bare
// strings as a singleton shorthand. Validation of names and exclusion
// references is the registry's job, not the loader's.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apastel/secret-santa-generator/internal/log"
	"github.com/apastel/secret-santa-generator/internal/participant"
)

// EnvParticipants names the environment variable pointing at a participants file.
const EnvParticipants = "SECRET_SANTA_PARTICIPANTS"

// Default lookup locations relative to the working directory.
const (
	localParticipantsPath   = "resources/participants.json"
	exampleParticipantsPath = "resources/participants.json.example"
)

// ErrNoParticipantsFile indicates no participants file was found anywhere in
// the lookup chain.
var ErrNoParticipantsFile = errors.New(
	"no participants file found: pass --participants, set " + EnvParticipants +
		", or add " + localParticipantsPath)

// NotFoundError indicates an explicitly given path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("participants file not found: %s", e.Path)
}

// Resolve returns the participants file path to load. An explicit non-empty
// path takes precedence and must exist; fallback locations are skipped
// silently when absent.
func Resolve(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", &NotFoundError{Path: path}
		}
		return path, nil
	}

	if envPath := os.Getenv(EnvParticipants); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			log.Debug(log.CatLoader, "Using participants file from env", "path", envPath)
			return envPath, nil
		}
		log.Warn(log.CatLoader, "Env var points at a missing file, ignoring",
			"var", EnvParticipants, "path", envPath)
	}

	for _, candidate := range []string{localParticipantsPath, exampleParticipantsPath} {
		if _, err := os.Stat(candidate); err == nil {
			log.Debug(log.CatLoader, "Using local participants file", "path", candidate)
			return candidate, nil
		}
	}

	return "", ErrNoParticipantsFile
}

// Load resolves and parses the participants file into raw entries.
func Load(path string) ([]participant.Entry, error) {
	resolved, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved) //nolint:gosec // G304: path is the user's participants file
	if err != nil {
		return nil, fmt.Errorf("reading participants file: %w", err)
	}

	entries, err := Parse(data, resolved)
	if err != nil {
		return nil, err
	}

	log.Info(log.CatLoader, "Loaded participants", "path", resolved, "count", len(entries))
	return entries, nil
}

// Parse decodes participants file content. The path is used only to pick
// the format by extension and to contextualize errors.
func Parse(data []byte, path string) ([]participant.Entry, error) {
	var items []any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return toEntries(items)
}

// toEntries converts decoded file items into participant entries. Each item
// is an object with a string "name" and optional "exclusions" list, or a
// bare string.
func toEntries(items []any) ([]participant.Entry, error) {
	entries := make([]participant.Entry, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			entries = append(entries, participant.Entry{Name: v})
		case map[string]any:
			name, ok := v["name"].(string)
			if !ok {
				return nil, fmt.Errorf("participant entry %d must have a string 'name' field", i)
			}
			exclusions, err := toNameList(v["exclusions"])
			if err != nil {
				return nil, fmt.Errorf("participant entry %d (%s): %w", i, name, err)
			}
			entries = append(entries, participant.Entry{Name: name, Exclusions: exclusions})
		default:
			return nil, fmt.Errorf("invalid participant entry %d: expected object or string", i)
		}
	}
	return entries, nil
}

func toNameList(value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, errors.New("'exclusions' must be a list of names")
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		name, ok := item.(string)
		if !ok {
			return nil, errors.New("'exclusions' must be a list of names")
		}
		names = append(names, name)
	}
	return names, nil
}
