package analytics

import (
	"github.com/ascendly/ascendly/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics",
	fx.Provide(service.New),
)
