package meeting

import (
	"github.com/vendaflow/vendaflow/internal/meeting/repository"
	"github.com/vendaflow/vendaflow/internal/meeting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("meeting.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideSpecialEvents),
	fx.Provide(service.New),
)
