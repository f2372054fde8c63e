package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

var (
	// ErrLoad возвращается, когда файл конфигурации не читается
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается при некорректных значениях
	ErrInvalid = errors.New("config: invalid value")
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SchedulingConfig struct {
	Timezone        string      `toml:"timezone"`
	CutoffMinutes   int         `toml:"cutoff_minutes"`
	StrictSlotClaim bool        `toml:"strict_slot_claim"`
	LockTTLSeconds  int         `toml:"lock_ttl_seconds"`
	Slots           [][2]string `toml:"slots"`

	location    *time.Location
	definitions []domain.SlotDefinition
}

// Location часовой пояс автомойки, в нём считаются календарные дни
func (s SchedulingConfig) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// Definitions разобранная сетка слотов
func (s SchedulingConfig) Definitions() []domain.SlotDefinition {
	out := make([]domain.SlotDefinition, len(s.definitions))
	copy(out, s.definitions)
	return out
}

func (s SchedulingConfig) CutoffLookAhead() time.Duration {
	return time.Duration(s.CutoffMinutes) * time.Minute
}

func (s SchedulingConfig) LockTTL() time.Duration {
	return time.Duration(s.LockTTLSeconds) * time.Second
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует её
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse то же, что Load, но из строки
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	c.applyDefaults()

	loc, err := time.LoadLocation(c.Scheduling.Timezone)
	if err != nil {
		return fmt.Errorf("%w: scheduling.timezone %q: %v", ErrInvalid, c.Scheduling.Timezone, err)
	}
	c.Scheduling.location = loc

	defs, err := domain.ParseSlotDefinitions(c.Scheduling.Slots)
	if err != nil {
		return fmt.Errorf("%w: scheduling.slots: %v", ErrInvalid, err)
	}
	if len(defs) == 0 {
		return fmt.Errorf("%w: scheduling.slots must not be empty", ErrInvalid)
	}
	c.Scheduling.definitions = defs

	if c.Scheduling.CutoffMinutes < 0 {
		return fmt.Errorf("%w: scheduling.cutoff_minutes must not be negative", ErrInvalid)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc_wash_scheduler"
	}

	if c.Scheduling.Timezone == "" {
		c.Scheduling.Timezone = domain.DefaultTimezone
	}
	if c.Scheduling.CutoffMinutes == 0 {
		c.Scheduling.CutoffMinutes = int(domain.DefaultCutoffLookAhead / time.Minute)
	}
	if c.Scheduling.LockTTLSeconds == 0 {
		c.Scheduling.LockTTLSeconds = 10
	}
	if len(c.Scheduling.Slots) == 0 {
		c.Scheduling.Slots = domain.DefaultSlotLabels
	}
}
