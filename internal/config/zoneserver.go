package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file path passed on the command line.
const EnvConfigPath = "ZONECORE_CONFIG"

// ZoneEntry describes a zone created at startup.
// A non-zero InstanceContentID makes it an instance.
type ZoneEntry struct {
	ID                uint32 `yaml:"id"`
	Name              string `yaml:"name"`
	InstanceContentID uint32 `yaml:"instance_content_id"`
}

// ZoneServer holds all configuration for the zone server.
type ZoneServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	LogLevel string `yaml:"log_level"`

	// Simulation
	TickInterval time.Duration `yaml:"tick_interval"`
	CellSize     float32       `yaml:"cell_size"`
	ViewDistance float32       `yaml:"view_distance"`

	// Write queue / timeouts
	SendQueueSize int           `yaml:"send_queue_size"` // per-client outbox capacity
	WriteTimeout  time.Duration `yaml:"write_timeout"`   // per-write deadline

	// Secret keying the session tickets presented in Hello.
	TicketSecret string `yaml:"ticket_secret"`

	// Zone event journal directory, empty disables it.
	JournalDir string `yaml:"journal_dir"`

	Database DatabaseConfig `yaml:"database"`

	Zones []ZoneEntry `yaml:"zones"`
}

// Addr returns host:port for the listener.
func (c ZoneServer) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// DefaultZoneServer returns ZoneServer config with sensible defaults.
func DefaultZoneServer() ZoneServer {
	return ZoneServer{
		BindAddress:   "0.0.0.0",
		Port:          7780,
		LogLevel:      "info",
		TickInterval:  100 * time.Millisecond,
		CellSize:      64,
		ViewDistance:  50,
		SendQueueSize: 256,
		WriteTimeout:  5 * time.Second,
		TicketSecret:  "change-me-please-0123456789abcdef",
		JournalDir:    "data/journal",
		Database: DatabaseConfig{
			Driver:   "pgx",
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "zonecore",
			Password: "zonecore",
			DBName:   "zonecore",
			SSLMode:  "disable",
			Path:     "data/zonecore.db",
		},
		Zones: []ZoneEntry{
			{ID: 128, Name: "Limsa Lominsa Upper Decks"},
			{ID: 132, Name: "New Gridania"},
			{ID: 130, Name: "Ul'dah - Steps of Nald"},
		},
	}
}

// Validate reports the first unusable setting.
func (c ZoneServer) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("port %d: %w", c.Port, ErrInvalidConfig)
	case c.TickInterval <= 0:
		return fmt.Errorf("tick_interval %s: %w", c.TickInterval, ErrInvalidConfig)
	case c.ViewDistance <= 0:
		return fmt.Errorf("view_distance %g: %w", c.ViewDistance, ErrInvalidConfig)
	case c.SendQueueSize <= 0:
		return fmt.Errorf("send_queue_size %d: %w", c.SendQueueSize, ErrInvalidConfig)
	case len(c.TicketSecret) < 16:
		return fmt.Errorf("ticket_secret shorter than 16 bytes: %w", ErrInvalidConfig)
	case c.Database.Driver != "pgx" && c.Database.Driver != "sqlite":
		return fmt.Errorf("database driver %q: %w", c.Database.Driver, ErrInvalidConfig)
	case len(c.Zones) == 0:
		return fmt.Errorf("no zones: %w", ErrInvalidConfig)
	}

	seen := make(map[uint32]struct{}, len(c.Zones))
	for _, z := range c.Zones {
		if z.ID == 0 {
			return fmt.Errorf("zone %q has id 0: %w", z.Name, ErrInvalidConfig)
		}
		if _, dup := seen[z.ID]; dup {
			return fmt.Errorf("duplicate zone id %d: %w", z.ID, ErrInvalidConfig)
		}
		seen[z.ID] = struct{}{}
	}
	return nil
}

// LoadZoneServer loads zone server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadZoneServer(path string) (ZoneServer, error) {
	cfg := DefaultZoneServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ResolvePath returns the config path from the environment if set, else fallback.
func ResolvePath(fallback string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return fallback
}
