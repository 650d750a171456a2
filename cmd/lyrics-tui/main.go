package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/genius-lyrics/internal/config"
	"github.com/handiism/genius-lyrics/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		envFlag     = flag.String("env", "", "Path to .env file (default ./.env)")
		outputFlag  = flag.String("output", "", "Output directory (overrides config)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output and write debug log to lyrics-tui.log")
	)
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}

	var envFiles []string
	if *envFlag != "" {
		envFiles = append(envFiles, *envFlag)
	}
	token, err := config.LoadToken(envFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings, token, *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
