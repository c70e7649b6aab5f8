package handler

import (
	"errors"
	"strings"

	"bachelorious/internal/middlewares"
	"bachelorious/internal/respond"
	"bachelorious/internal/service"
	"bachelorious/pkg/customerror"
	"bachelorious/pkg/listing"
	"bachelorious/pkg/validate"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ListingHandlerI interface {
	RegisterCommands(root *cobra.Command)
	Search(cmd *cobra.Command, args []string) error
	GetListing(cmd *cobra.Command, args []string) error
	GetMyListings(cmd *cobra.Command, args []string) error
	InsertListing(cmd *cobra.Command, args []string) error
	DeleteListing(cmd *cobra.Command, args []string) error
	GetAmenities(cmd *cobra.Command, args []string) error
	ContactOwner(cmd *cobra.Command, args []string) error
	ReserveListing(cmd *cobra.Command, args []string) error
}

type ListingHandler struct {
	listingService service.ListingServiceI
	middlewares    middlewares.MiddlewaresI
	log            zerolog.Logger
}

func NewListingHandler(listingService service.ListingServiceI, middlewares middlewares.MiddlewaresI, log zerolog.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		middlewares:    middlewares,
		log:            log,
	}
}

func (listingHandler *ListingHandler) RegisterCommands(root *cobra.Command) {
	listingsCmd := &cobra.Command{
		Use:     "listings",
		Aliases: []string{"properties"},
		Short:   "Browse and manage property listings",
	}

	defaults := listing.DefaultFilter()
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search available listings",
		Args:  cobra.NoArgs,
		RunE:  listingHandler.Search,
	}
	searchCmd.Flags().StringP("query", "q", "", "Text matched against title, location and description")
	searchCmd.Flags().String("type", "", "house, room or seat")
	searchCmd.Flags().String("location", "", "Location substring")
	searchCmd.Flags().Float64("min-price", defaults.MinPrice, "Minimum monthly price")
	searchCmd.Flags().Float64("max-price", defaults.MaxPrice, "Maximum monthly price")
	searchCmd.Flags().Float64("min-area", defaults.MinArea, "Minimum area in sq ft")
	searchCmd.Flags().Float64("max-area", defaults.MaxArea, "Maximum area in sq ft")
	searchCmd.Flags().String("sort", string(defaults.SortBy), "price, area or date")
	searchCmd.Flags().String("order", string(defaults.SortOrder), "asc or desc")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE:  listingHandler.GetListing,
	}

	mineCmd := &cobra.Command{
		Use:     "mine",
		Short:   "List the properties of the logged in owner",
		Args:    cobra.NoArgs,
		PreRunE: middlewares.Chain(listingHandler.middlewares.ValidUser()),
		RunE:    listingHandler.GetMyListings,
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "List a property",
		Args:  cobra.NoArgs,
		PreRunE: middlewares.Chain(
			listingHandler.middlewares.ValidUser(),
			listingHandler.middlewares.OwnerOnly(),
		),
		RunE: listingHandler.InsertListing,
	}
	createCmd.Flags().String("title", "", "Listing title")
	createCmd.Flags().String("description", "", "Listing description")
	createCmd.Flags().String("type", string(listing.CategoryRoom), "house, room or seat")
	createCmd.Flags().Float64("price", 0, "Monthly price")
	createCmd.Flags().String("location", "", "Location")
	createCmd.Flags().Float64("area", 0, "Area in sq ft")
	createCmd.Flags().StringArray("amenity", nil, "Amenity, repeatable")
	createCmd.Flags().String("image", "", "Image URL")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove one of your listings",
		Args:  cobra.ExactArgs(1),
		PreRunE: middlewares.Chain(
			listingHandler.middlewares.ValidUser(),
			listingHandler.middlewares.MyListing(),
		),
		RunE: listingHandler.DeleteListing,
	}

	amenitiesCmd := &cobra.Command{
		Use:   "amenities",
		Short: "Show the amenity vocabulary",
		Args:  cobra.NoArgs,
		RunE:  listingHandler.GetAmenities,
	}

	contactCmd := &cobra.Command{
		Use:     "contact <id>",
		Short:   "Send a message to the owner of a listing",
		Args:    cobra.ExactArgs(1),
		PreRunE: middlewares.Chain(listingHandler.middlewares.ValidUser()),
		RunE:    listingHandler.ContactOwner,
	}
	contactCmd.Flags().String("message", "", "Message for the owner")

	reserveCmd := &cobra.Command{
		Use:     "reserve <id>",
		Short:   "Pay for and reserve a listing",
		Args:    cobra.ExactArgs(1),
		PreRunE: middlewares.Chain(listingHandler.middlewares.ValidUser()),
		RunE:    listingHandler.ReserveListing,
	}
	reserveCmd.Flags().Int("months", 1, "Number of months")
	reserveCmd.Flags().String("card-number", "", "Card number")
	reserveCmd.Flags().String("expiry", "", "Card expiry date, MM/YY")
	reserveCmd.Flags().String("cvv", "", "Card CVV")
	reserveCmd.Flags().String("name-on-card", "", "Name on card")

	listingsCmd.AddCommand(searchCmd, showCmd, mineCmd, createCmd, deleteCmd, amenitiesCmd, contactCmd, reserveCmd)
	root.AddCommand(listingsCmd)
}

func (listingHandler *ListingHandler) Search(cmd *cobra.Command, args []string) error {
	filter := listing.DefaultFilter()
	filter.Query, _ = cmd.Flags().GetString("query")
	category, _ := cmd.Flags().GetString("type")
	filter.Type = listing.Category(category)
	filter.Location, _ = cmd.Flags().GetString("location")
	filter.MinPrice, _ = cmd.Flags().GetFloat64("min-price")
	filter.MaxPrice, _ = cmd.Flags().GetFloat64("max-price")
	filter.MinArea, _ = cmd.Flags().GetFloat64("min-area")
	filter.MaxArea, _ = cmd.Flags().GetFloat64("max-area")
	sortBy, _ := cmd.Flags().GetString("sort")
	filter.SortBy = listing.SortKey(sortBy)
	order, _ := cmd.Flags().GetString("order")
	filter.SortOrder = listing.SortOrder(order)

	if filter.Type != "" && !filter.Type.Valid() {
		return respond.BadRequest(cmd.OutOrStdout(), "type must be house, room or seat")
	}
	switch filter.SortBy {
	case listing.SortByPrice, listing.SortByArea, listing.SortByDate:
	default:
		return respond.BadRequest(cmd.OutOrStdout(), "sort must be price, area or date")
	}
	if filter.SortOrder != listing.SortAsc && filter.SortOrder != listing.SortDesc {
		return respond.BadRequest(cmd.OutOrStdout(), "order must be asc or desc")
	}

	listings, err := listingHandler.listingService.Query(filter)
	if errors.Is(err, customerror.ErrCorruptState) {
		// unreadable catalog shows up as an empty result
		listingHandler.log.Error().Err(customerror.AppendModule(err, "ListingHandler.Search")).Msg("catalog unreadable")
		listings = []listing.Listing{}
		err = nil
	}
	if err != nil {
		listingHandler.log.Error().Err(customerror.AppendModule(err, "ListingHandler.Search")).Msg("search failed")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"count":    len(listings),
		"listings": listings,
	})
}

func (listingHandler *ListingHandler) GetListing(cmd *cobra.Command, args []string) error {
	l, err := listingHandler.listingService.GetByID(args[0])
	if errors.Is(err, customerror.ErrNotFound) {
		return respond.NotFound(cmd.OutOrStdout(), "listing not found")
	}
	if err != nil {
		listingHandler.log.Error().Err(customerror.AppendModule(err, "ListingHandler.GetListing")).Msg("load listing")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"listing": l,
	})
}

func (listingHandler *ListingHandler) GetMyListings(cmd *cobra.Command, args []string) error {
	account, ok := middlewares.UserFrom(cmd.Context())
	if !ok {
		listingHandler.log.Error().Msg("user not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	listings, err := listingHandler.listingService.ListByOwner(account.Id)
	if err != nil {
		listingHandler.log.Error().Err(customerror.AppendModule(err, "ListingHandler.GetMyListings")).Msg("load listings")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"listings": listings,
	})
}

func (listingHandler *ListingHandler) InsertListing(cmd *cobra.Command, args []string) error {
	account, ok := middlewares.UserFrom(cmd.Context())
	if !ok {
		listingHandler.log.Error().Msg("user not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("type")
	price, _ := cmd.Flags().GetFloat64("price")
	location, _ := cmd.Flags().GetString("location")
	area, _ := cmd.Flags().GetFloat64("area")
	amenities, _ := cmd.Flags().GetStringArray("amenity")
	image, _ := cmd.Flags().GetString("image")

	for _, field := range []struct{ name, value string }{
		{"title", title},
		{"description", description},
		{"location", location},
		{"image URL", image},
	} {
		if err := validate.Required(field.name, field.value); err != nil {
			return respond.BadRequest(cmd.OutOrStdout(), err.Error())
		}
	}
	if !listing.Category(category).Valid() {
		return respond.BadRequest(cmd.OutOrStdout(), "type must be house, room or seat")
	}
	if err := validate.Positive("price", price); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	if err := validate.Positive("area", area); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}

	created, err := listingHandler.listingService.Create(listing.Listing{
		Title:       title,
		Description: description,
		Type:        listing.Category(category),
		Price:       price,
		Location:    location,
		Area:        area,
		Amenities:   uniqueAmenities(amenities),
		Images:      []string{strings.TrimSpace(image)},
		OwnerId:     account.Id,
		OwnerName:   account.Name,
		OwnerPhone:  account.Phone,
		OwnerEmail:  account.Email,
		Available:   true,
	})
	if err != nil {
		listingHandler.log.Error().Err(customerror.AppendModule(err, "ListingHandler.InsertListing")).Msg("create listing")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"listing": created,
	})
}

// uniqueAmenities drops blanks and repeats; the form treats amenities as a
// set of toggles.
func uniqueAmenities(amenities []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, amenity := range amenities {
		amenity = strings.TrimSpace(amenity)
		if amenity == "" || seen[amenity] {
			continue
		}
		seen[amenity] = true
		out = append(out, amenity)
	}
	return out
}

func (listingHandler *ListingHandler) DeleteListing(cmd *cobra.Command, args []string) error {
	l, ok := middlewares.ListingFrom(cmd.Context())
	if !ok {
		listingHandler.log.Error().Msg("listing not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	account, ok := middlewares.UserFrom(cmd.Context())
	if !ok {
		listingHandler.log.Error().Msg("user not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	err := listingHandler.listingService.DeleteByID(l.Id, account.Id)
	if errors.Is(err, customerror.ErrNotFound) {
		return respond.NotFound(cmd.OutOrStdout(), "listing not found")
	}
	if err != nil {
		listingHandler.log.Error().Err(customerror.AppendModule(err, "ListingHandler.DeleteListing")).Msg("delete listing")
		return respond.InternalError(cmd.OutOrStdout())
	}
	return respond.OK(cmd.OutOrStdout(), nil)
}

func (listingHandler *ListingHandler) GetAmenities(cmd *cobra.Command, args []string) error {
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"amenities": listing.Amenities,
	})
}

// lookup answers 404 for an unknown id and 500 for anything else.
func (listingHandler *ListingHandler) lookup(cmd *cobra.Command, listingId string, module string) (*listing.Listing, error) {
	l, err := listingHandler.listingService.GetByID(listingId)
	if errors.Is(err, customerror.ErrNotFound) {
		return nil, respond.NotFound(cmd.OutOrStdout(), "listing not found")
	}
	if err != nil {
		listingHandler.log.Error().Err(customerror.AppendModule(err, module)).Msg("load listing")
		return nil, respond.InternalError(cmd.OutOrStdout())
	}
	return l, nil
}

// ContactOwner only acknowledges the message; nothing is delivered.
func (listingHandler *ListingHandler) ContactOwner(cmd *cobra.Command, args []string) error {
	account, ok := middlewares.UserFrom(cmd.Context())
	if !ok {
		listingHandler.log.Error().Msg("user not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	l, err := listingHandler.lookup(cmd, args[0], "ListingHandler.ContactOwner")
	if err != nil {
		return err
	}
	message, _ := cmd.Flags().GetString("message")
	if err := validate.Required("message", message); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	listingHandler.log.Info().Str("listing_id", l.Id).Str("from", account.Id).Msg("message to owner")
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"propertyId": l.Id,
		"ownerName":  l.OwnerName,
		"message":    strings.TrimSpace(message),
	})
}

// ReserveListing checks the payment form and returns a receipt. No payment
// is taken and the reservation is not stored.
func (listingHandler *ListingHandler) ReserveListing(cmd *cobra.Command, args []string) error {
	account, ok := middlewares.UserFrom(cmd.Context())
	if !ok {
		listingHandler.log.Error().Msg("user not found in context")
		return respond.InternalError(cmd.OutOrStdout())
	}
	l, err := listingHandler.lookup(cmd, args[0], "ListingHandler.ReserveListing")
	if err != nil {
		return err
	}
	months, _ := cmd.Flags().GetInt("months")
	cardNumber, _ := cmd.Flags().GetString("card-number")
	expiry, _ := cmd.Flags().GetString("expiry")
	cvv, _ := cmd.Flags().GetString("cvv")
	nameOnCard, _ := cmd.Flags().GetString("name-on-card")

	if err := validate.Months(months); err != nil {
		return respond.BadRequest(cmd.OutOrStdout(), err.Error())
	}
	for _, field := range []struct{ name, value string }{
		{"card number", cardNumber},
		{"expiry date", expiry},
		{"CVV", cvv},
		{"name on card", nameOnCard},
	} {
		if err := validate.Required(field.name, field.value); err != nil {
			return respond.BadRequest(cmd.OutOrStdout(), err.Error())
		}
	}

	reservation := listing.Reserve(*l, account.Id, months)
	listingHandler.log.Info().Str("listing_id", l.Id).Str("user_id", account.Id).Int("months", months).Msg("listing reserved")
	return respond.OK(cmd.OutOrStdout(), respond.Body{
		"propertyId":  reservation.PropertyId,
		"months":      reservation.Months,
		"totalAmount": reservation.TotalAmount,
		"status":      reservation.Status,
	})
}
