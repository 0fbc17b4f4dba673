package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers" validate:"dive"`
	Scoring  ScoringConfig           `mapstructure:"scoring"`
	Lending  LendingConfig           `mapstructure:"lending"`
	Deposits DepositConfig           `mapstructure:"deposits"`
	Registry RegistryConfig          `mapstructure:"registry"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	Server   ServerConfig            `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address" validate:"required"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active" validate:"gte=1"`
	Timeout        int    `mapstructure:"timeout" validate:"gte=1"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout" validate:"gte=1"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	Database       string `mapstructure:"database" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// GetDSN returns the key/value connection string used by lib/pq.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// GetURL returns the URL form of the connection string; golang-migrate only
// accepts URLs.
func (p PostgresConfig) GetURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Host + ":" + strconv.Itoa(p.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

type ElasticsearchConfig struct {
	Addresses         []string `mapstructure:"addresses"`
	Username          string   `mapstructure:"username"`
	Password          string   `mapstructure:"password"`
	URL               string   `mapstructure:"url"`
	TransactionsIndex string   `mapstructure:"transactions_index" validate:"required"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active" validate:"gte=1"`
	Timeout       int  `mapstructure:"timeout" validate:"gte=1"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries" validate:"gte=0"`
}

// --- Domain Configuration ---

// ScoringConfig drives caller-side input resolution; the engine itself is not configurable.
type ScoringConfig struct {
	Defaults ScoringDefaults `mapstructure:"defaults"`
	CacheTTL int             `mapstructure:"cache_ttl" validate:"gte=0"` // milliseconds
	Signals  SignalsConfig   `mapstructure:"signals"`
}

// ScoringDefaults are applied when a profile leaves a signal unset.
type ScoringDefaults struct {
	CreditScore     int     `mapstructure:"credit_score" validate:"gte=0"`
	MonthlyIncome   float64 `mapstructure:"monthly_income" validate:"gte=0"`
	MonthlyVariance float64 `mapstructure:"monthly_variance" validate:"gte=0"`
}

type SignalsConfig struct {
	LookbackMonths int `mapstructure:"lookback_months" validate:"gte=1,lte=120"`
}

// LendingConfig bounds loan requests.
type LendingConfig struct {
	MaxAmount       float64 `mapstructure:"max_amount" validate:"gt=0"`
	MinTenureMonths int     `mapstructure:"min_tenure_months" validate:"gte=1"`
	MaxTenureMonths int     `mapstructure:"max_tenure_months" validate:"gtefield=MinTenureMonths"`
}

// DepositConfig bounds deposit requests.
type DepositConfig struct {
	MinAmount         float64  `mapstructure:"min_amount" validate:"gte=0"`
	MinDurationMonths int      `mapstructure:"min_duration_months" validate:"gte=1"`
	MaxDurationMonths int      `mapstructure:"max_duration_months" validate:"gtefield=MinDurationMonths"`
	Types             []string `mapstructure:"types" validate:"min=1,dive,required"`
}

// AllowsType reports whether depositType is one of the configured types.
func (d DepositConfig) AllowsType(depositType string) bool {
	for _, t := range d.Types {
		if t == depositType {
			return true
		}
	}
	return false
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

// CacheTTLDuration returns the profile cache TTL.
func (s ScoringConfig) CacheTTLDuration() time.Duration {
	return GetDuration(s.CacheTTL)
}
