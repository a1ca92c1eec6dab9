package config

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ProfileFileName is the optional per-directory supplier profile. It lives
// next to the input files, not in the application config, because it
// describes the directory's suppliers rather than the installation.
const ProfileFileName = "fiyat-profile.yaml"

// Profile holds per-directory overrides for supplier quirks.
type Profile struct {
	// CodePattern overrides engine.code_pattern for this directory
	// ("fixed10" or "prefix3").
	CodePattern string `yaml:"code_pattern"`

	// ExtraDelimiters appends decoder candidates (UTF-16 with the given
	// delimiter) after the default chain.
	ExtraDelimiters []string `yaml:"extra_delimiters"`
}

// LoadProfile reads the supplier profile from dir. A missing file is not
// an error; it simply means defaults apply.
func LoadProfile(dir string) (*Profile, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProfileFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Profile{}, nil
		}
		return nil, eris.Wrap(err, "config: read supplier profile")
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrap(err, "config: parse supplier profile")
	}
	return &p, nil
}
