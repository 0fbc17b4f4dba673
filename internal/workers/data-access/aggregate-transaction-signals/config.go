package aggregatetransactionsignals

import (
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"
)

type Config struct {
	Timeout               time.Duration
	Index                 string
	DefaultLookbackMonths int
}

func NewConfig(app *config.Config) *Config {
	wc := config.GetWorkerConfig(app, TaskType)
	return &Config{
		Timeout:               config.GetDuration(wc.Timeout),
		Index:                 app.Database.Elasticsearch.TransactionsIndex,
		DefaultLookbackMonths: app.Scoring.Signals.LookbackMonths,
	}
}
