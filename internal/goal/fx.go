package goal

import (
	"github.com/vendaflow/vendaflow/internal/goal/repository"
	"github.com/vendaflow/vendaflow/internal/goal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("goal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
