package main

import (
	"github.com/2Lynk/DeathLogger-server/cmd"
)

func main() {
	cmd.Execute()
}
