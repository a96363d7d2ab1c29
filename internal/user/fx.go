package user

import (
	"github.com/ascendly/ascendly/internal/user/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("user",
	fx.Provide(repository.Provide),
)
