package middlewares

import (
	"context"
	"errors"

	"bachelorious/internal/respond"
	"bachelorious/internal/service"
	"bachelorious/pkg/customerror"
	"bachelorious/pkg/listing"
	"bachelorious/pkg/user"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Hook runs before a command. Returning an error stops the chain and the
// command itself.
type Hook func(cmd *cobra.Command, args []string) error

type contextKey string

const (
	userKey    contextKey = "user"
	listingKey contextKey = "listing"
)

type MiddlewaresI interface {
	ValidUser() Hook
	OwnerOnly() Hook
	MyListing() Hook
}

type Middlewares struct {
	sessionService service.SessionServiceI
	listingService service.ListingServiceI
	log            zerolog.Logger
}

func NewMiddlewares(sessionService service.SessionServiceI, listingService service.ListingServiceI, log zerolog.Logger) *Middlewares {
	return &Middlewares{
		sessionService: sessionService,
		listingService: listingService,
		log:            log,
	}
}

// Chain runs hooks in order as a cobra PreRunE.
func Chain(hooks ...Hook) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for _, hook := range hooks {
			if err := hook(cmd, args); err != nil {
				return err
			}
		}
		return nil
	}
}

func withValue(cmd *cobra.Command, key contextKey, value any) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, key, value))
}

func UserFrom(ctx context.Context) (*user.Account, bool) {
	if ctx == nil {
		return nil, false
	}
	account, ok := ctx.Value(userKey).(*user.Account)
	return account, ok && account != nil
}

func ListingFrom(ctx context.Context) (*listing.Listing, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(listingKey).(*listing.Listing)
	return l, ok && l != nil
}

func (middlewares *Middlewares) ValidUser() Hook {
	return func(cmd *cobra.Command, args []string) error {
		account := middlewares.sessionService.CurrentUser()
		if account == nil {
			return respond.Unauthorized(cmd.OutOrStdout(), "login required")
		}
		withValue(cmd, userKey, account)
		return nil
	}
}

// OwnerOnly must run after ValidUser.
func (middlewares *Middlewares) OwnerOnly() Hook {
	return func(cmd *cobra.Command, args []string) error {
		account, ok := UserFrom(cmd.Context())
		if !ok {
			middlewares.log.Error().Msg("OwnerOnly used without ValidUser")
			return respond.InternalError(cmd.OutOrStdout())
		}
		if account.Role != user.RoleOwner {
			return respond.Forbidden(cmd.OutOrStdout(), "only property owners can list properties")
		}
		return nil
	}
}

// MyListing loads the listing named by the first argument and lets the
// command through only when the current user owns it.
func (middlewares *Middlewares) MyListing() Hook {
	return func(cmd *cobra.Command, args []string) error {
		account, ok := UserFrom(cmd.Context())
		if !ok {
			middlewares.log.Error().Msg("MyListing used without ValidUser")
			return respond.InternalError(cmd.OutOrStdout())
		}
		if len(args) == 0 || args[0] == "" {
			return respond.BadRequest(cmd.OutOrStdout(), "invalid id")
		}
		l, err := middlewares.listingService.GetByID(args[0])
		if errors.Is(err, customerror.ErrNotFound) {
			return respond.NotFound(cmd.OutOrStdout(), "listing not found")
		}
		if err != nil {
			middlewares.log.Error().Err(customerror.AppendModule(err, "Middlewares.MyListing")).Msg("load listing")
			return respond.InternalError(cmd.OutOrStdout())
		}
		if l.OwnerId != account.Id {
			return respond.Forbidden(cmd.OutOrStdout(), "Forbidden")
		}
		withValue(cmd, listingKey, l)
		return nil
	}
}
