package main

import (
	"github.com/ecol-master/packhouse/internal/cli"
	"github.com/ecol-master/packhouse/internal/lockctl"
)

func main() {
	cli.StandardMain(func() cli.Configurable { return lockctl.NewConfig() }, lockctl.NewHandler())
}
