package main

import (
	"fmt"
	"os"

	"github.com/vfg2006/revenue-compare-api/internal/config"
	"github.com/vfg2006/revenue-compare-api/internal/terminal"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Config: cfg,
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
