package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/vendaflow/vendaflow/internal/clock"
	"github.com/vendaflow/vendaflow/internal/config"
	"github.com/vendaflow/vendaflow/internal/migration"
	"github.com/vendaflow/vendaflow/internal/observability"
	"github.com/vendaflow/vendaflow/internal/server"
	"github.com/vendaflow/vendaflow/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
