package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"bachelorious/pkg/customerror"
	"bachelorious/pkg/listing"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type ListingRepositoryI interface {
	GetListings(ctx context.Context) ([]listing.Listing, bool, error)
	SaveListings(ctx context.Context, listings []listing.Listing) error
	Seed() ([]listing.Listing, error)
}

type ListingRepository struct {
	Store KeyValueStoreI
}

func NewListingRepository(store KeyValueStoreI) *ListingRepository {
	return &ListingRepository{
		Store: store,
	}
}

// GetListings returns the stored collection and whether one has ever been
// written.
func (listingRepo *ListingRepository) GetListings(ctx context.Context) ([]listing.Listing, bool, error) {
	raw, ok, err := listingRepo.Store.Load(ctx, ListingsKey)
	if err != nil {
		return nil, false, customerror.AppendModule(err, "listingRepo.GetListings")
	}
	if !ok {
		return []listing.Listing{}, false, nil
	}
	listings := []listing.Listing{}
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, true, corrupt("listingRepo.GetListings", listingRepo.Store.Endpoint(), err.Error())
	}
	if listings == nil {
		listings = []listing.Listing{}
	}
	for i, l := range listings {
		if !l.Type.Valid() {
			return nil, true, corrupt("listingRepo.GetListings", listingRepo.Store.Endpoint(), fmt.Sprintf("listing %d has unknown type %q", i, l.Type))
		}
	}
	return listings, true, nil
}

func (listingRepo *ListingRepository) SaveListings(ctx context.Context, listings []listing.Listing) error {
	if listings == nil {
		listings = []listing.Listing{}
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return customerror.NewError("listingRepo.SaveListings", listingRepo.Store.Endpoint(), err.Error())
	}
	if err := listingRepo.Store.Save(ctx, ListingsKey, raw); err != nil {
		return customerror.AppendModule(err, "listingRepo.SaveListings")
	}
	return nil
}

// Seed decodes the built-in first-run catalog.
func (listingRepo *ListingRepository) Seed() ([]listing.Listing, error) {
	var listings []listing.Listing
	if err := yaml.Unmarshal(seedYAML, &listings); err != nil {
		return nil, customerror.NewError("listingRepo.Seed", "embed:seed.yaml", err.Error())
	}
	return listings, nil
}
