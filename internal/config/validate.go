package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	return nil
}

func (p *PipelineConfig) validate() error {
	if p.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", p.BatchSize)
	}

	paths := []struct {
		name  string
		value string
	}{
		{"corpus_path", p.CorpusPath},
		{"entries_path", p.EntriesPath},
		{"snapshot_path", p.SnapshotPath},
		{"edges_path", p.EdgesPath},
	}
	for _, path := range paths {
		if strings.TrimSpace(path.value) == "" {
			return fmt.Errorf("%s must not be empty", path.name)
		}
	}

	return nil
}
