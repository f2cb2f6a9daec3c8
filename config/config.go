package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreAirtable = "airtable"
	StorePostgres = "postgres"
)

// Config is built once at process start and shared read-only afterwards.
type Config struct {
	Port           string
	Store          string
	Airtable       Airtable
	Postgres       Postgres
	Tables         Tables
	Mail           Mail
	RedisHost      string
	RequestTimeout time.Duration
	NotifyTimeout  time.Duration
}

type Airtable struct {
	APIKey   string
	BaseID   string
	Endpoint string
}

type Postgres struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	SSLMode  string
}

// DSN returns the connection string in the format expected by gorm's postgres driver.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		p.Host, p.User, p.Password, p.Name, p.Port, p.SSLMode)
}

// Tables holds the remote table name for each entity kind.
type Tables struct {
	Users            string
	Letters          string
	Events           string
	CollectionPoints string
	Knowledge        string
	Donations        string
}

type Mail struct {
	SMTPHost      string
	SMTPPort      int
	Username      string
	Password      string
	From          string
	Queue         string
	ArchiveBucket string
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("store_backend", StoreAirtable)
	v.SetDefault("airtable_endpoint", "https://api.airtable.com/v0")

	v.SetDefault("airtable_table_name", "usuarios")
	v.SetDefault("airtable_cartinhas_table", "cartinhas")
	v.SetDefault("airtable_eventos_table", "eventos")
	v.SetDefault("airtable_pontos_table", "pontosdecoleta")
	v.SetDefault("airtable_cloudinho_table", "cloudinho_kb")
	v.SetDefault("airtable_doacoes_table", "doacoes")

	v.SetDefault("db_port", 5432)
	v.SetDefault("db_sslmode", "require")

	v.SetDefault("mail_queue", "varal:mail")
	v.SetDefault("smtp_port", 587)

	v.SetDefault("request_timeout", 15*time.Second)
	v.SetDefault("notify_timeout", 10*time.Second)
}

// Load reads the configuration from the environment, optionally layered over
// the YAML file named by VARAL_CONFIG. Environment values win.
func Load() (*Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if path := os.Getenv("VARAL_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:  v.GetString("port"),
		Store: v.GetString("store_backend"),
		Airtable: Airtable{
			APIKey:   v.GetString("airtable_api_key"),
			BaseID:   v.GetString("airtable_base_id"),
			Endpoint: v.GetString("airtable_endpoint"),
		},
		Postgres: Postgres{
			Host:     v.GetString("db_host"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			Port:     v.GetInt("db_port"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Tables: Tables{
			Users:            v.GetString("airtable_table_name"),
			Letters:          v.GetString("airtable_cartinhas_table"),
			Events:           v.GetString("airtable_eventos_table"),
			CollectionPoints: v.GetString("airtable_pontos_table"),
			Knowledge:        v.GetString("airtable_cloudinho_table"),
			Donations:        v.GetString("airtable_doacoes_table"),
		},
		Mail: Mail{
			SMTPHost:      v.GetString("smtp_host"),
			SMTPPort:      v.GetInt("smtp_port"),
			Username:      v.GetString("smtp_user"),
			Password:      v.GetString("smtp_password"),
			From:          v.GetString("mail_from"),
			Queue:         v.GetString("mail_queue"),
			ArchiveBucket: v.GetString("mail_archive_bucket"),
		},
		RedisHost:      v.GetString("redis_host"),
		RequestTimeout: duration(v, "request_timeout"),
		NotifyTimeout:  duration(v, "notify_timeout"),
	}
}

// duration reads a Go duration such as "15s". A bare number counts as seconds.
func duration(v *viper.Viper, key string) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key))); err == nil {
		return time.Duration(n) * time.Second
	}
	return v.GetDuration(key)
}

// Warnings lists configuration gaps that make store calls fail later on.
// None of them stop the process.
func (c *Config) Warnings() []string {
	var warnings []string
	switch c.Store {
	case StoreAirtable:
		if c.Airtable.APIKey == "" || c.Airtable.BaseID == "" {
			warnings = append(warnings, "AIRTABLE_API_KEY and AIRTABLE_BASE_ID are not set; store requests will fail")
		}
	case StorePostgres:
		if c.Postgres.Host == "" || c.Postgres.Name == "" {
			warnings = append(warnings, "DB_HOST and DB_NAME are not set; store requests will fail")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("unknown STORE_BACKEND %q, falling back to %s", c.Store, StoreAirtable))
	}
	if tooShort(c.RequestTimeout) {
		warnings = append(warnings, fmt.Sprintf("REQUEST_TIMEOUT is %v; every request will time out", c.RequestTimeout))
	}
	if tooShort(c.NotifyTimeout) {
		warnings = append(warnings, fmt.Sprintf("NOTIFY_TIMEOUT is %v; every notification will time out", c.NotifyTimeout))
	}
	if c.Mail.From == "" && c.Mail.SMTPHost != "" {
		warnings = append(warnings, "MAIL_FROM is not set; SMTP servers may reject outgoing mail")
	}
	return warnings
}

// zero disables a timeout; anything under a millisecond is a unit mistake
func tooShort(d time.Duration) bool {
	return d > 0 && d < time.Millisecond
}
