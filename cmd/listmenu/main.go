package main

import (
	"os"

	"listmenu/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
