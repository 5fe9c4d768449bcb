package main

import (
	"github.com/wordsnpics/wordsnpics/internal/cli"
)

func main() {
	cli.Execute()
}
