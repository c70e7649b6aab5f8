package handler

import (
	"errors"

	"bachelorious/internal/middlewares"
	"bachelorious/internal/respond"
	"bachelorious/internal/service"
	"bachelorious/pkg/customerror"
	"bachelorious/pkg/user"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type UserHandlerI interface {
	RegisterCommands(root *cobra.Command)
	GetProfile(cmd *cobra.Command, args []string) error
	UpdateProfile(cmd *cobra.Command, args []string) error
}

type UserHandler struct {
	sessionService service.SessionServiceI
	listingService service.ListingServiceI
	middlewares    middlewares.MiddlewaresI
	log            zerolog.Logger
}

func NewUserHandler(sessionService service.SessionServiceI, listingService service.ListingServiceI, middlewares middlewares.MiddlewaresI, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		sessionService: sessionService,
		listingService: listingService,
		middlewares:    middlewares,
		log:            log,
	}
}

func (userHandler *UserHandler) RegisterCommands(root *cobra.Command) {
	profileCmd := &cobra.Command{
		Use:     "profile",
		Short:   "Show the logged in account and its listings",
		Args:    cobra.NoArgs,
		PreRunE: middlewares.Chain(userHandler.middlewares.ValidUser()),
		RunE:    userHandler.GetProfile,
	}
	updateCmd := &cobra.Command{
		Use:     "update",
		Short:   "Change name, email or phone",
		Args:    cobra.NoArgs,
		PreRunE: middlewares.Chain(userHandler.middlewares.ValidUser()),
		RunE:    userHandler.UpdateProfile,
	}
	updateCmd.Flags().String("name", "", "New display name")
	updateCmd.Flags().String("email", "", "New email address")
	updateCmd.Flags().String("phone", "", "New phone number")
	profileCmd.AddCommand(updateCmd)
	root.AddCommand(profileCmd)
}

func (userHandler *UserHandler) GetProfile(cmd *cobra.Command, args []string) error {
	account, ok := middlewares.UserFrom(cmd.Context())
	if !ok {
		userHandler.log.Error().Msg("user not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	listings, err := userHandler.listingService.ListByOwner(account.Id)
	if err != nil {
		userHandler.log.Error().Err(customerror.AppendModule(err, "UserHandler.GetProfile")).Msg("load listings")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"user":     account,
		"listings": listings,
	})
}

func (userHandler *UserHandler) UpdateProfile(cmd *cobra.Command, args []string) error {
	account, ok := middlewares.UserFrom(cmd.Context())
	if !ok {
		userHandler.log.Error().Msg("user not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	var update user.ProfileUpdate
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		update.Name = &name
	}
	if cmd.Flags().Changed("email") {
		email, _ := cmd.Flags().GetString("email")
		update.Email = &email
	}
	if cmd.Flags().Changed("phone") {
		phone, _ := cmd.Flags().GetString("phone")
		update.Phone = &phone
	}
	if update.Name == nil && update.Email == nil && update.Phone == nil {
		return respond.BadRequest(cmd.OutOrStdout(), "nothing to update")
	}
	updated, err := userHandler.sessionService.UpdateProfile(account.Id, update)
	if errors.Is(err, customerror.ErrNotFound) {
		return respond.NotFound(cmd.OutOrStdout(), "user not found")
	}
	if err != nil {
		userHandler.log.Error().Err(customerror.AppendModule(err, "UserHandler.UpdateProfile")).Msg("update profile")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"user": updated,
	})
}
