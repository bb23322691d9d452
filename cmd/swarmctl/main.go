package main

import (
	"os"

	"github.com/Gunvolt24/partswarm/cmd/swarmctl/commands"
)

// Версия проставляется при сборке (-ldflags "-X main.version=...").
var version = "dev"

func main() {
	// Ошибки уже напечатаны printer'ом
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}
