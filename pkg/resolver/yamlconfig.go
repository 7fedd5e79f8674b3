package resolver

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/reflectrpteam/luau/internal/config"
)

// projectConfig is one project's .luaucheck.yml contents: a default
// mode plus per-directory overrides, the YAML analogue of the
// teacher's own flat config.Mode constant set (no library previously
// parsed these — this project's ambient config story needs one, and
// yaml.v3 is what the rest of the example pack reaches for).
type projectConfig struct {
	Mode      string            `yaml:"mode"`
	Overrides map[string]string `yaml:"overrides"`
}

// YAMLConfigResolver implements ConfigResolver by reading a single
// ".luaucheck.yml" at a project root and walking up from a queried
// directory to the nearest ancestor with an override, falling back to
// the project-wide default mode.
type YAMLConfigResolver struct {
	mu   sync.Mutex
	root string
	cfg  *projectConfig
}

// NewYAMLConfigResolver reads configPath once (a ".luaucheck.yml" file);
// a missing file is not an error — ModeFor simply always reports
// ok=false, leaving every module to fall back to its hot comment or
// config.ModeNonstrict.
func NewYAMLConfigResolver(configPath string) (*YAMLConfigResolver, error) {
	r := &YAMLConfigResolver{root: filepath.Dir(configPath)}
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	r.cfg = &cfg
	return r, nil
}

func (r *YAMLConfigResolver) ModeFor(dir string) (config.Mode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg == nil {
		return config.ModeNonstrict, false
	}

	rel, err := filepath.Rel(r.root, dir)
	if err == nil {
		for {
			if modeName, ok := r.cfg.Overrides[rel]; ok {
				if m, ok := parseMode(modeName); ok {
					return m, true
				}
			}
			parent := filepath.Dir(rel)
			if parent == rel {
				break
			}
			rel = parent
		}
	}
	if r.cfg.Mode != "" {
		if m, ok := parseMode(r.cfg.Mode); ok {
			return m, true
		}
	}
	return config.ModeNonstrict, false
}

func parseMode(s string) (config.Mode, bool) {
	switch s {
	case "strict":
		return config.ModeStrict, true
	case "nonstrict":
		return config.ModeNonstrict, true
	case "nocheck":
		return config.ModeNoCheck, true
	case "definition":
		return config.ModeDefinition, true
	default:
		return config.ModeNonstrict, false
	}
}
