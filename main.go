package main

import (
	"os"

	"github.com/inakineitor/algo-comp-2023/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
