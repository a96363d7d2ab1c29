package auth

import (
	"github.com/ascendly/ascendly/internal/auth/repository"
	"github.com/ascendly/ascendly/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
