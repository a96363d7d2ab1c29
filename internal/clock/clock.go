package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time.Now so services can be tested with a fixed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func System() Clock {
	return systemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(System),
)
