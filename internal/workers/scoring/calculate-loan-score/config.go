package calculateloanscore

import (
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func NewConfig(app *config.Config) *Config {
	wc := config.GetWorkerConfig(app, TaskType)
	return &Config{
		Timeout: config.GetDuration(wc.Timeout),
	}
}
