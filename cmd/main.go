package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bachelorious/internal/handler"
	"bachelorious/internal/middlewares"
	"bachelorious/internal/repository"
	"bachelorious/internal/respond"
	"bachelorious/internal/service"
	"bachelorious/pkg/config"
	"bachelorious/pkg/logger"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "bachelorious",
		Short:         "Rental marketplace for houses, rooms and seats",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

func run() error {
	appConfig, err := config.NewConfig(".env")
	if err != nil {
		return err
	}
	log := logger.New("bachelorious", appConfig.LogLevel)

	store, err := repository.NewStore(context.Background(), appConfig)
	if err != nil {
		log.Error().Err(err).Str("driver", appConfig.StorageDriver).Msg("open storage")
		return err
	}
	defer store.Close()
	log.Debug().Str("endpoint", store.Endpoint()).Msg("storage ready")

	userRepository := repository.NewUserRepository(store)
	listingRepository := repository.NewListingRepository(store)

	sessionService := service.NewSessionService(userRepository, appConfig, log)
	listingService := service.NewListingService(listingRepository, appConfig, log)
	if err := sessionService.Restore(); err != nil {
		log.Warn().Err(err).Msg("could not restore session")
	}

	middlewares := middlewares.NewMiddlewares(sessionService, listingService, log)
	authHandler := handler.NewAuthHandler(sessionService, log)
	userHandler := handler.NewUserHandler(sessionService, listingService, middlewares, log)
	listingHandler := handler.NewListingHandler(listingService, middlewares, log)

	root := newRootCommand()
	authHandler.RegisterCommands(root)
	userHandler.RegisterCommands(root)
	listingHandler.RegisterCommands(root)

	return root.ExecuteContext(context.Background())
}

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, respond.ErrAborted) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
