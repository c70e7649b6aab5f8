package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"bachelorious/internal/repository"
	"bachelorious/pkg/config"
	"bachelorious/pkg/customerror"
	"bachelorious/pkg/listing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ListingServiceI interface {
	Create(l listing.Listing) (*listing.Listing, error)
	DeleteByID(listingId string, requesterId string) error
	ListAll() ([]listing.Listing, error)
	Query(filter listing.Filter) ([]listing.Listing, error)
	GetByID(listingId string) (*listing.Listing, error)
	ListByOwner(ownerId string) ([]listing.Listing, error)
}

// ListingService owns the listing collection. It does not check who is
// asking: ownership of a delete is the caller's concern.
type ListingService struct {
	listingRepo repository.ListingRepositoryI
	log         zerolog.Logger
	timeout     time.Duration
	now         func() time.Time

	mu sync.Mutex
}

func NewListingService(listingRepo repository.ListingRepositoryI, appConfig *config.Config, log zerolog.Logger) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		log:         log.With().Str("component", "catalog").Logger(),
		timeout:     appConfig.OperationTimeout,
		now:         time.Now,
	}
}

func (listingService *ListingService) newContext() (context.Context, context.CancelFunc) {
	timeout := listingService.timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return context.WithTimeout(context.Background(), timeout)
}

// load returns the stored collection, writing the seed catalog first when
// nothing has ever been stored. Callers hold mu.
func (listingService *ListingService) load(ctx context.Context) ([]listing.Listing, error) {
	listings, found, err := listingService.listingRepo.GetListings(ctx)
	if err != nil {
		if errors.Is(err, customerror.ErrCorruptState) {
			listingService.log.Warn().Err(err).Msg("listing collection is corrupt")
		}
		return nil, err
	}
	if found {
		return listings, nil
	}
	seed, err := listingService.listingRepo.Seed()
	if err != nil {
		return nil, err
	}
	if err := listingService.listingRepo.SaveListings(ctx, seed); err != nil {
		return nil, err
	}
	listingService.log.Info().Int("count", len(seed)).Msg("seeded listing collection")
	return seed, nil
}

func newListingId(listings []listing.Listing) (string, error) {
	for retries := 0; retries < idRetries; retries++ {
		id, err := uuid.NewV7()
		if err != nil {
			return "", customerror.NewError("ListingService.newListingId", "uuid", err.Error())
		}
		taken := slices.ContainsFunc(listings, func(l listing.Listing) bool {
			return l.Id == id.String()
		})
		if !taken {
			return id.String(), nil
		}
	}
	return "", customerror.NewError("ListingService.newListingId", "uuid", "could not allocate a unique id")
}

// Create stores l under a fresh identifier. The remaining fields are taken as
// given; an empty creation time is set to now.
func (listingService *ListingService) Create(l listing.Listing) (*listing.Listing, error) {
	listingService.mu.Lock()
	defer listingService.mu.Unlock()
	ctx, cancel := listingService.newContext()
	defer cancel()
	listings, err := listingService.load(ctx)
	if err != nil {
		return nil, customerror.AppendModule(err, "ListingService.Create")
	}
	id, err := newListingId(listings)
	if err != nil {
		return nil, err
	}
	l.Id = id
	if l.CreatedAt == "" {
		l.CreatedAt = listingService.now().UTC().Format(listing.CreatedAtLayout)
	}
	l.Amenities = slices.Clone(l.Amenities)
	l.Images = slices.Clone(l.Images)
	listings = append(listings, l)
	if err := listingService.listingRepo.SaveListings(ctx, listings); err != nil {
		return nil, customerror.AppendModule(err, "ListingService.Create")
	}
	listingService.log.Info().Str("listing_id", id).Str("owner_id", l.OwnerId).Msg("listing created")
	return &l, nil
}

func (listingService *ListingService) DeleteByID(listingId string, requesterId string) error {
	listingService.mu.Lock()
	defer listingService.mu.Unlock()
	ctx, cancel := listingService.newContext()
	defer cancel()
	listings, err := listingService.load(ctx)
	if err != nil {
		return customerror.AppendModule(err, "ListingService.DeleteByID")
	}
	index := slices.IndexFunc(listings, func(l listing.Listing) bool {
		return l.Id == listingId
	})
	if index == -1 {
		return customerror.ErrNotFound
	}
	listings = slices.Delete(listings, index, index+1)
	if err := listingService.listingRepo.SaveListings(ctx, listings); err != nil {
		return customerror.AppendModule(err, "ListingService.DeleteByID")
	}
	listingService.log.Info().Str("listing_id", listingId).Str("requester_id", requesterId).Msg("listing deleted")
	return nil
}

func (listingService *ListingService) ListAll() ([]listing.Listing, error) {
	listingService.mu.Lock()
	defer listingService.mu.Unlock()
	ctx, cancel := listingService.newContext()
	defer cancel()
	listings, err := listingService.load(ctx)
	if err != nil {
		return []listing.Listing{}, customerror.AppendModule(err, "ListingService.ListAll")
	}
	return listings, nil
}

// Query returns the available listings matching filter in the requested
// order. A collection that cannot be read gives an empty result.
func (listingService *ListingService) Query(filter listing.Filter) ([]listing.Listing, error) {
	listingService.mu.Lock()
	defer listingService.mu.Unlock()
	ctx, cancel := listingService.newContext()
	defer cancel()
	listings, err := listingService.load(ctx)
	if err != nil {
		return []listing.Listing{}, customerror.AppendModule(err, "ListingService.Query")
	}
	return queryListings(listings, filter), nil
}

func (listingService *ListingService) GetByID(listingId string) (*listing.Listing, error) {
	listingService.mu.Lock()
	defer listingService.mu.Unlock()
	ctx, cancel := listingService.newContext()
	defer cancel()
	listings, err := listingService.load(ctx)
	if err != nil {
		return nil, customerror.AppendModule(err, "ListingService.GetByID")
	}
	for _, l := range listings {
		if l.Id == listingId {
			return &l, nil
		}
	}
	return nil, customerror.ErrNotFound
}

// ListByOwner returns every listing of the owner in stored order, including
// unavailable ones.
func (listingService *ListingService) ListByOwner(ownerId string) ([]listing.Listing, error) {
	listingService.mu.Lock()
	defer listingService.mu.Unlock()
	ctx, cancel := listingService.newContext()
	defer cancel()
	listings, err := listingService.load(ctx)
	if err != nil {
		return []listing.Listing{}, customerror.AppendModule(err, "ListingService.ListByOwner")
	}
	owned := []listing.Listing{}
	for _, l := range listings {
		if l.OwnerId == ownerId {
			owned = append(owned, l)
		}
	}
	return owned, nil
}
