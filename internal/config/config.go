package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig ошибка валидации конфигурации
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config корневая конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Calendar      CalendarConfig      `toml:"calendar"`
	Reservations  ReservationsConfig  `toml:"reservations"`
	Notifications NotificationsConfig `toml:"notifications"`
	Sweep         SweepConfig         `toml:"sweep"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
	TxMaxAttempts   int    `toml:"tx_max_attempts"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig правила календаря визитов
type CalendarConfig struct {
	Slots                    []string `toml:"slots"`
	MaxFutureDays            int      `toml:"max_future_days"`
	LeadMinutes              int      `toml:"lead_minutes"`
	MaxActiveVisitsPerClient int      `toml:"max_active_visits_per_client"`
	MaxVisitsPerDay          int      `toml:"max_visits_per_day"`
	DefaultAgendaDays        int      `toml:"default_agenda_days"`
	MaxAgendaDays            int      `toml:"max_agenda_days"`
	Timezone                 string   `toml:"timezone"`
}

// ReservationsConfig настройки резерваций
type ReservationsConfig struct {
	DefaultTTLHours int `toml:"default_ttl_hours"`
}

// DefaultTTL срок жизни резервации по умолчанию
func (c ReservationsConfig) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLHours) * time.Hour
}

// NotificationsConfig настройки отправки уведомлений
type NotificationsConfig struct {
	Store bool       `toml:"store"`
	NATS  NATSConfig `toml:"nats"`
}

// NATSConfig публикация уведомлений в NATS
type NATSConfig struct {
	Enabled       bool   `toml:"enabled"`
	URL           string `toml:"url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// SweepConfig настройки освобождения просроченных резерваций
type SweepConfig struct {
	BatchSize int `toml:"batch_size"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и проверяет её
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
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

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
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
	if c.Database.TxMaxAttempts == 0 {
		c.Database.TxMaxAttempts = 3
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "visit-scheduler"
	}

	if len(c.Calendar.Slots) == 0 {
		for _, slot := range domain.DefaultSlotCatalog {
			c.Calendar.Slots = append(c.Calendar.Slots, slot.String())
		}
	}
	if c.Calendar.MaxFutureDays == 0 {
		c.Calendar.MaxFutureDays = domain.DefaultMaxFutureDays
	}
	if c.Calendar.MaxActiveVisitsPerClient == 0 {
		c.Calendar.MaxActiveVisitsPerClient = domain.DefaultMaxActiveVisitsPerClient
	}
	if c.Calendar.MaxVisitsPerDay == 0 {
		c.Calendar.MaxVisitsPerDay = domain.DefaultMaxVisitsPerDay
	}
	if c.Calendar.DefaultAgendaDays == 0 {
		c.Calendar.DefaultAgendaDays = domain.DefaultAgendaDays
	}
	if c.Calendar.MaxAgendaDays == 0 {
		c.Calendar.MaxAgendaDays = domain.DefaultMaxAgendaDays
	}
	if c.Calendar.Timezone == "" {
		c.Calendar.Timezone = domain.DefaultTimezone
	}

	if c.Reservations.DefaultTTLHours == 0 {
		c.Reservations.DefaultTTLHours = domain.DefaultReservationTTLHours
	}

	if c.Notifications.NATS.SubjectPrefix == "" {
		c.Notifications.NATS.SubjectPrefix = "notifications"
	}

	if c.Sweep.BatchSize == 0 {
		c.Sweep.BatchSize = 500
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Calendar.MaxFutureDays < 0 {
		return fmt.Errorf("%w: calendar.max_future_days must not be negative", ErrInvalidConfig)
	}
	if c.Calendar.LeadMinutes < 0 {
		return fmt.Errorf("%w: calendar.lead_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Calendar.MaxAgendaDays < 1 {
		return fmt.Errorf("%w: calendar.max_agenda_days must be positive", ErrInvalidConfig)
	}
	if c.Calendar.DefaultAgendaDays < 1 || c.Calendar.DefaultAgendaDays > c.Calendar.MaxAgendaDays {
		return fmt.Errorf("%w: calendar.default_agenda_days must be in [1, %d]",
			ErrInvalidConfig, c.Calendar.MaxAgendaDays)
	}
	if c.Reservations.DefaultTTLHours < 1 {
		return fmt.Errorf("%w: reservations.default_ttl_hours must be positive", ErrInvalidConfig)
	}
	if c.Notifications.NATS.Enabled && c.Notifications.NATS.URL == "" {
		return fmt.Errorf("%w: notifications.nats.url is required when nats is enabled", ErrInvalidConfig)
	}
	if _, err := c.Calendar.ToDomain(); err != nil {
		return err
	}
	return nil
}

// ToDomain собирает неизменяемую конфигурацию календаря
func (c CalendarConfig) ToDomain() (domain.CalendarConfig, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return domain.CalendarConfig{}, fmt.Errorf("%w: calendar.timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}

	slots := make([]types.TimeString, 0, len(c.Slots))
	for _, raw := range c.Slots {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return domain.CalendarConfig{}, fmt.Errorf("%w: calendar.slots %q: %v", ErrInvalidConfig, raw, err)
		}
		slots = append(slots, slot)
	}

	cal, err := domain.NewCalendarConfig(domain.CalendarConfig{
		Slots:                    slots,
		MaxFutureDays:            c.MaxFutureDays,
		LeadMinutes:              c.LeadMinutes,
		MaxActiveVisitsPerClient: c.MaxActiveVisitsPerClient,
		MaxVisitsPerDay:          c.MaxVisitsPerDay,
		DefaultAgendaDays:        c.DefaultAgendaDays,
		MaxAgendaDays:            c.MaxAgendaDays,
		Location:                 loc,
	})
	if err != nil {
		return domain.CalendarConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cal, nil
}
