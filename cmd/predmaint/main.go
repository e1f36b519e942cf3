package main

import (
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/cli"
)

var (
	version = "0.1.0"
)

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
