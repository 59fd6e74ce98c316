package sale

import (
	"github.com/vendaflow/vendaflow/internal/sale/repository"
	"github.com/vendaflow/vendaflow/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideStudents),
	fx.Provide(service.New),
)
