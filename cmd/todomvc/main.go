package main

import (
	"os"

	"github.com/Makepad-fr/todomvc/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
