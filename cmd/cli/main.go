package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"devicehub-go/pkg/cli"
	"devicehub-go/pkg/cli/logger"
	"devicehub-go/pkg/config"
)

func main() {
	var (
		importURL = flag.String("import", "", "Import every device linked from a listing page URL")
		listMode  = flag.Bool("list", false, "List all devices")
		scrapeURL = flag.String("scrape", "", "Scrape a single device page and print it without importing")
		register  = flag.String("register", "", "Register a user with the given email and save the API key")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
	)
	flag.Parse()

	defer logger.CloseLog()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := cli.NewApp(cfg)

	// Handle config commands first (don't need any service)
	if *configShow {
		app.ShowConfig()
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			log.Fatalf("failed to set config: %v", err)
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	switch {
	case *register != "":
		err = app.RegisterUser(*register)
	case *listMode:
		err = app.ListDevices()
	case *scrapeURL != "":
		err = app.ScrapeDevice(*scrapeURL)
	case *importURL != "":
		err = app.RunImport(*importURL)
	default:
		err = app.Run()
	}

	if err != nil {
		logger.LogError(err, "command failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.CloseLog()
		os.Exit(1)
	}
}
