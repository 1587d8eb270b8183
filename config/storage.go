package config

import (
	"fmt"
	"strings"
)

// StorageBackend selects where the durable session state lives.
type StorageBackend string

const (
	// StorageBackendFile persists the session to a JSON file under the user
	// config directory. The default for interactive use.
	StorageBackendFile StorageBackend = "file"
	// StorageBackendRedis persists the session to Redis, for shared or CI
	// environments.
	StorageBackendRedis StorageBackend = "redis"
	// StorageBackendMemory keeps the session in process memory only.
	StorageBackendMemory StorageBackend = "memory"
	// StorageBackendNone disables durable storage entirely. Every run starts
	// unauthenticated.
	StorageBackendNone StorageBackend = "none"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis", "memory", "none":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: file, redis, memory, none)", v)
	}
}

// RedisStorageConfig contains Redis connection settings for session storage.
type RedisStorageConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	// KeyPrefix namespaces session keys so several tools can share one Redis.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"adminctl:session:"`
}

// StorageConfig groups durable session storage configuration.
type StorageConfig struct {
	// Backend selects the storage adapter.
	Backend StorageBackend `env:"BACKEND" envDefault:"file"`

	// FilePath overrides the session file location (Backend=file). Empty
	// means the per-user default under the OS config directory.
	FilePath string `env:"FILE_PATH"`

	// Redis connection settings (Backend=redis).
	Redis RedisStorageConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to storage configuration.
func (c *StorageConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = StorageBackendFile
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "adminctl:session:"
	}
}
