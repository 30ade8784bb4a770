package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"MediCore/config"
	"MediCore/database"
	"MediCore/routes"
)

func main() {
	// Load configuration from config package
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize the CSV table store
	store, err := database.InitStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to initialize table store: %v", err)
	}

	// Log to a file so the console stays free for the menus
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "medicore.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger := newLogger(cfg.LogLevel, logFile)

	router, err := routes.SetupRouter(store, cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		log.Fatalf("failed to set up menus: %v", err)
	}

	// Exit cleanly on Ctrl+C while a menu waits for input
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logger.Info().Msg("interrupt received, exiting")
		logFile.Sync()
		fmt.Println("\nGoodbye.")
		os.Exit(0)
	}()

	logger.Info().Str("dataDir", cfg.DataDir).Msg("starting")
	router.Prompt.Say("MediCore Hospital Management")

	for {
		user := router.Auth.Resume()
		if user == nil {
			router.Prompt.Say("Sign in to continue.")
			user = router.Auth.Login()
		}
		if user == nil {
			break
		}

		logger.Info().Str("userId", user.ID).Str("role", string(user.Role)).Msg("signed in")
		router.Dispatch(user)
		router.Auth.Logout()
		logger.Info().Str("userId", user.ID).Msg("signed out")

		if router.Prompt.EOF() {
			break
		}
	}

	logger.Info().Msg("exiting")
	router.Prompt.Say("Goodbye.")
}

// newLogger builds the file logger used across the application.
func newLogger(levelName string, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "medicore").Logger()
}
