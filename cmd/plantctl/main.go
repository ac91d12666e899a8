package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/IBM/regression-optimization-code-pattern/internal/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
