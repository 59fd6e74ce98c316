package lead

import (
	"github.com/vendaflow/vendaflow/internal/lead/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("lead.repository",
	fx.Provide(repository.Provide),
)
