package main

import (
	"github.com/tempo-cli/tempo/cmd"
)

func main() {
	cmd.Execute()
}
