package evaluatedepositapplication

import (
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"

	"github.com/shopspring/decimal"
)

type Config struct {
	Timeout           time.Duration
	MinAmount         decimal.Decimal
	MinDurationMonths int
	MaxDurationMonths int
	Deposits          config.DepositConfig
}

func NewConfig(app *config.Config) *Config {
	wc := config.GetWorkerConfig(app, TaskType)
	return &Config{
		Timeout:           config.GetDuration(wc.Timeout),
		MinAmount:         decimal.NewFromFloat(app.Deposits.MinAmount),
		MinDurationMonths: app.Deposits.MinDurationMonths,
		MaxDurationMonths: app.Deposits.MaxDurationMonths,
		Deposits:          app.Deposits,
	}
}
