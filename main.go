package main

import (
	"fmt"
	"os"

	"github.com/llehouerou/uap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "uap:", err)
		os.Exit(1)
	}
}
