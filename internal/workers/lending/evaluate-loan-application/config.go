package evaluateloanapplication

import (
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"

	"github.com/shopspring/decimal"
)

type Config struct {
	Timeout         time.Duration
	MaxAmount       decimal.Decimal
	MinTenureMonths int
	MaxTenureMonths int
}

func NewConfig(app *config.Config) *Config {
	wc := config.GetWorkerConfig(app, TaskType)
	return &Config{
		Timeout:         config.GetDuration(wc.Timeout),
		MaxAmount:       decimal.NewFromFloat(app.Lending.MaxAmount),
		MinTenureMonths: app.Lending.MinTenureMonths,
		MaxTenureMonths: app.Lending.MaxTenureMonths,
	}
}
