package main

import (
	"os"

	"github.com/qwed-ai/qwed-mcp/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
