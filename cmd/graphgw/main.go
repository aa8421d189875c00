package main

import (
	"os"

	"github.com/Amarverma111/graph/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
