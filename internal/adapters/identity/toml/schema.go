package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Client  *clientSchema `toml:"client,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported identity schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type clientSchema struct {
	ID      string `toml:"id"`
	SavedAt string `toml:"saved_at,omitempty"`
}
