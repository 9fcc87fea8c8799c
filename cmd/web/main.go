package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"bikeshare/internal/app"
	"bikeshare/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (BIKESHARE_* variables still apply)")
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	application, err := app.NewApplication(*configFile)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
