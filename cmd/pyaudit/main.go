package main

import (
	"github.com/asears/grand-ai-hotel/internal/cli"
)

func main() {
	cli.Execute()
}
