package currency

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RatesHolder serves the active conversion table. Rates load from
// rates.yml when present and hot-reload on change; otherwise the
// built-in defaults apply.
type RatesHolder struct {
	current atomic.Value // holds Converter
}

func NewRatesHolder(searchPath string, log *zap.Logger) (*RatesHolder, error) {
	v := viper.New()

	v.SetConfigName("rates")
	v.SetConfigType("yml")
	if strings.TrimSpace(searchPath) != "" {
		v.AddConfigPath(searchPath)
	}
	v.AddConfigPath("/etc/ascendly")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ASCENDLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		v.SetDefault("rates", map[string]float64(DefaultRates()))
	}

	rates, err := unmarshalRates(v)
	if err != nil {
		return nil, err
	}

	holder := &RatesHolder{}
	holder.current.Store(NewConverter(rates))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalRates(v)
		if err != nil {
			log.Warn("rates reload failed", zap.Error(err))
			return
		}
		holder.current.Store(NewConverter(updated))
		log.Info("rates reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticHolder wraps a fixed table with no file watching. Meant for
// tests and tooling that never reload.
func NewStaticHolder(rates Rates) *RatesHolder {
	holder := &RatesHolder{}
	holder.current.Store(NewConverter(rates))
	return holder
}

// Converter returns the active conversion table.
func (h *RatesHolder) Converter() Converter {
	return h.current.Load().(Converter)
}

func unmarshalRates(v *viper.Viper) (Rates, error) {
	var raw map[string]float64
	if err := v.UnmarshalKey("rates", &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return DefaultRates(), nil
	}
	return Rates(raw), nil
}
