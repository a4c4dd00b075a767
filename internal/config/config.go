package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// PipelineConfig holds artifact locations and bulk transfer settings.
type PipelineConfig struct {
	CorpusPath   string `yaml:"corpus_path"   env:"COGNET_CORPUS_PATH"   env-default:"CogNetv2.tsv"`
	EntriesPath  string `yaml:"entries_path"  env:"COGNET_ENTRIES_PATH"  env-default:"cognates.csv"`
	SnapshotPath string `yaml:"snapshot_path" env:"COGNET_SNAPSHOT_PATH" env-default:"db_cognates.csv"`
	EdgesPath    string `yaml:"edges_path"    env:"COGNET_EDGES_PATH"    env-default:"edges.csv"`
	BatchSize    int    `yaml:"batch_size"    env:"COGNET_BATCH_SIZE"    env-default:"10000"`
	DryRun       bool   `yaml:"dry_run"       env:"COGNET_DRY_RUN"`
}
