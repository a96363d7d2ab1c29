package commission

import (
	"github.com/ascendly/ascendly/internal/commission/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("commission",
	fx.Provide(repository.Provide),
)
