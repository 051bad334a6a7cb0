package main

import (
	"github.com/netops-toolkit/portcsv/pkg/cli"
)

func main() {
	cli.Execute()
}
