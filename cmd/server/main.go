package main

import (
	"lexdoc/internal/server"
	"lexdoc/internal/util"
	"lexdoc/pkg/logger"
	"lexdoc/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	logger.Init(console.New(console.Params{
		Debug: debug,
	}))

	server.Init()
}
