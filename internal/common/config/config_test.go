package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: banking
    user: ${TEST_DB_USER}
    password: p@ss/word
  elasticsearch:
    url: http://localhost:9200
  redis:
    address: localhost:6379
workers:
  fetch-client-profile:
    enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("TEST_DB_USER", "scoring")

	cfg, err := LoadFromFile(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "scoring", cfg.Database.Postgres.User)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Database.Elasticsearch.Addresses)
	assert.Equal(t, "transactions", cfg.Database.Elasticsearch.TransactionsIndex)

	assert.Equal(t, 650, cfg.Scoring.Defaults.CreditScore)
	assert.Equal(t, 1000.0, cfg.Scoring.Defaults.MonthlyIncome)
	assert.Equal(t, 2.0, cfg.Scoring.Defaults.MonthlyVariance)
	assert.Equal(t, 12, cfg.Scoring.Signals.LookbackMonths)
	assert.Equal(t, 10000000.0, cfg.Lending.MaxAmount)
	assert.Equal(t, 3, cfg.Lending.MinTenureMonths)
	assert.Equal(t, 84, cfg.Lending.MaxTenureMonths)
	assert.Equal(t, []string{"fixed", "flexible"}, cfg.Deposits.Types)
	assert.Equal(t, ":8080", cfg.Server.Address)

	assert.False(t, IsWorkerEnabled(cfg, "fetch-client-profile"))
	assert.True(t, IsWorkerEnabled(cfg, "calculate-loan-score"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "calculate-loan-score").Timeout)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "fetch-client-profile").MaxJobsActive)
}

func TestLoadFromFile_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "missing broker",
			yaml:     "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  elasticsearch:\n    url: http://es\n  redis:\n    address: r\n",
			contains: "BrokerAddress",
		},
		{
			name:     "inverted tenure",
			yaml:     minimalYAML + "lending:\n  min_tenure_months: 24\n  max_tenure_months: 12\n",
			contains: "MaxTenureMonths",
		},
		{
			name:     "unknown log level",
			yaml:     minimalYAML + "logging:\n  level: verbose\n",
			contains: "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestPostgresConfig_URLs(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, Database: "banking", User: "app", Password: "p@ss/word", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=app password=p@ss/word dbname=banking sslmode=disable", p.GetDSN())
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/banking?sslmode=disable", p.GetURL())
}

func TestDepositConfig_AllowsType(t *testing.T) {
	d := DepositConfig{Types: []string{"fixed", "flexible"}}
	assert.True(t, d.AllowsType("fixed"))
	assert.False(t, d.AllowsType("savings"))
}
