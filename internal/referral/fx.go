package referral

import (
	"github.com/ascendly/ascendly/internal/referral/repository"
	"github.com/ascendly/ascendly/internal/referral/service"
	"go.uber.org/fx"
)

var Module = fx.Module("referral",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
