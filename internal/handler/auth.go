package handler

import (
	"errors"
	"strings"

	"bachelorious/internal/respond"
	"bachelorious/internal/service"
	"bachelorious/pkg/customerror"
	"bachelorious/pkg/user"
	"bachelorious/pkg/validate"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type AuthHandlerI interface {
	RegisterCommands(root *cobra.Command)
	Register(cmd *cobra.Command, args []string) error
	Login(cmd *cobra.Command, args []string) error
	Logout(cmd *cobra.Command, args []string) error
	WhoAmI(cmd *cobra.Command, args []string) error
}

type AuthHandler struct {
	sessionService service.SessionServiceI
	log            zerolog.Logger
}

func NewAuthHandler(sessionService service.SessionServiceI, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		log:            log,
	}
}

func (authHandler *AuthHandler) RegisterCommands(root *cobra.Command) {
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE:  authHandler.Register,
	}
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("password", "", "Password, at least 6 characters")
	registerCmd.Flags().String("confirm-password", "", "Password again")
	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("role", string(user.RoleSeeker), "Account type: seeker or owner")
	registerCmd.Flags().String("phone", "", "10-digit phone number")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE:  authHandler.Login,
	}
	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE:  authHandler.Logout,
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE:  authHandler.WhoAmI,
	}

	root.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}

func (authHandler *AuthHandler) Register(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	confirmPassword, _ := cmd.Flags().GetString("confirm-password")
	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")
	phone, _ := cmd.Flags().GetString("phone")

	if err := validate.Required("name", name); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	if err := validate.Email(email); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	if err := validate.Password(password); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	if password != confirmPassword {
		return respond.BadRequest(cmd.OutOrStdout(), "passwords do not match")
	}
	if err := validate.Phone(phone); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	if !user.Role(role).Valid() {
		return respond.BadRequest(cmd.OutOrStdout(), "role must be seeker or owner")
	}

	account, err := authHandler.sessionService.Register(email, password, strings.TrimSpace(name), user.Role(role), phone)
	if errors.Is(err, customerror.ErrUserAlreadyExists) {
		return respond.Conflict(cmd.OutOrStdout(), "an account with this email already exists")
	}
	if err != nil {
		authHandler.log.Error().Err(customerror.AppendModule(err, "AuthHandler.Register")).Msg("registration failed")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"user": account,
	})
}

func (authHandler *AuthHandler) Login(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if err := validate.Required("email", email); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	if err := validate.Required("password", password); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}

	account, err := authHandler.sessionService.Login(email, password)
	if errors.Is(err, customerror.ErrWrongCredentials) {
		return respond.Unauthorized(cmd.OutOrStdout(), "invalid email or password")
	}
	if err != nil {
		authHandler.log.Error().Err(customerror.AppendModule(err, "AuthHandler.Login")).Msg("login failed")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"user": account,
	})
}

func (authHandler *AuthHandler) Logout(cmd *cobra.Command, args []string) error {
	if err := authHandler.sessionService.Logout(); err != nil {
		authHandler.log.Error().Err(customerror.AppendModule(err, "AuthHandler.Logout")).Msg("logout failed")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), nil)
}

func (authHandler *AuthHandler) WhoAmI(cmd *cobra.Command, args []string) error {
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"user": authHandler.sessionService.CurrentUser(),
	})
}
