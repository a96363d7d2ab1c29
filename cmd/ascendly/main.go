package main

import (
	"github.com/ascendly/ascendly/internal/server"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(registerSnowflake),
		server.Module,
	).Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
