package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/coc"
	"coc_cwl_bot/internal/commands"
	"coc_cwl_bot/internal/msgcat"
	"coc_cwl_bot/internal/processing"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	command := flag.String("command", commands.CWLStandings,
		"Command to run ("+strings.Join(commands.Names(), ", ")+")")
	timeout := flag.Duration("timeout", 60*time.Second, "Maximum time for the whole command (e.g., 30s, 2m)")
	flag.Parse()

	log.Info().
		Str("command", *command).
		Dur("timeout", *timeout).
		Msg("Starting CoC CWL bot")

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	catalog, err := msgcat.New(config.MessagesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load message catalog")
	}

	// Initialize clients
	cocClient := coc.NewClient(config)
	tracker := processing.NewAPICallTracker()
	trackedClient := processing.NewTrackedCocClient(cocClient, tracker)

	// Initialize pipelines
	fetcher := processing.NewWarFetcher(trackedClient, config.WarFetchConcurrency)
	resolver := processing.NewWarResolver(trackedClient, fetcher, config.ClanTag)

	dispatcher := commands.NewDispatcher(
		catalog,
		processing.NewRosterService(trackedClient, config.ClanTag),
		processing.NewWarSummaryService(resolver),
		processing.NewStandingsService(trackedClient, fetcher, config.ClanTag),
		tracker,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	message, err := dispatcher.Run(ctx, *command)
	fmt.Println(message)

	log.Info().
		Int64("api_calls", cocClient.GetAPICallCount()).
		Msg("Completed command")

	if err != nil {
		cancel()
		os.Exit(1)
	}
}
