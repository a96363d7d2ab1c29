package currency

import (
	"github.com/ascendly/ascendly/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("currency",
	fx.Provide(provideRatesHolder),
)

func provideRatesHolder(cfg config.Config, log *zap.Logger) (*RatesHolder, error) {
	return NewRatesHolder(cfg.Analytics.RatesPath, log.Named("currency.rates"))
}
