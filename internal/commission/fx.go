package commission

import (
	"github.com/vendaflow/vendaflow/internal/commission/repository"
	"github.com/vendaflow/vendaflow/internal/commission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("commission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
