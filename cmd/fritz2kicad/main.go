package main

import (
	"github.com/padstack/fritz2kicad/cmd/fritz2kicad/cmd"
)

func main() {
	cmd.Execute()
}
