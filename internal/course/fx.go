package course

import (
	"github.com/ascendly/ascendly/internal/course/repository"
	"github.com/ascendly/ascendly/internal/course/service"
	"go.uber.org/fx"
)

var Module = fx.Module("course",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
