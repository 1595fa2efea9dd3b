package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Admin     AdminConfig     `toml:"admin"`
	Notify    NotifyConfig    `toml:"notifications"`
	Reminders RemindersConfig `toml:"reminders"`
}

// ServerConfig настройки HTTP сервера
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
}

// DSN возвращает строку подключения к БД
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AdminConfig настройки доступа администратора
// Password может быть как plain-текстом, так и bcrypt-хэшем
type AdminConfig struct {
	Password      string `toml:"password"`
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	CookieSecure  bool   `toml:"cookie_secure"`
}

// NotifyConfig настройки уведомлений (email + SMS)
type NotifyConfig struct {
	SMTP   SMTPConfig   `toml:"smtp"`
	Twilio TwilioConfig `toml:"twilio"`
}

// SMTPConfig настройки SMTP для отправки email
// При пустом host отправка работает в mock-режиме (только логирование)
type SMTPConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	From string `toml:"from"`
}

// TwilioConfig настройки Twilio для отправки SMS
// При пустых credentials отправка работает в mock-режиме
type TwilioConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromPhone  string `toml:"from_phone"`
}

// RemindersConfig настройки планировщика напоминаний
type RemindersConfig struct {
	Enabled bool   `toml:"enabled"`
	Spec    string `toml:"spec"` // cron-выражение, например "0 9 * * *"
}

// Load загружает конфигурацию из TOML файла
// Секреты могут быть переопределены через переменные окружения
// (.env подхватывается, если присутствует)
func Load(path string) (*Config, error) {
	// .env опционален - в production секреты приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	return cfg, nil
}

// applyEnv переопределяет секреты из переменных окружения
func (c *Config) applyEnv() {
	overrideString(&c.Database.Password, "DB_PASSWORD")
	overrideString(&c.Admin.Password, "ADMIN_PASSWORD")
	overrideString(&c.Admin.JWTSecret, "JWT_SECRET")
	overrideString(&c.Notify.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	overrideString(&c.Notify.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	overrideString(&c.Notify.Twilio.FromPhone, "TWILIO_PHONE_NUMBER")
	overrideString(&c.Notify.SMTP.Host, "SMTP_HOST")
	overrideString(&c.Notify.SMTP.Port, "SMTP_PORT")
	overrideString(&c.Notify.SMTP.From, "SMTP_FROM")
}

func (c *Config) applyDefaults() {
	if c.Admin.TokenTTLHours <= 0 {
		c.Admin.TokenTTLHours = 24
	}
	if c.Reminders.Spec == "" {
		c.Reminders.Spec = "0 9 * * *"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func overrideString(target *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*target = v
	}
}
