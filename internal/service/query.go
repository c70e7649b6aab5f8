package service

import (
	"cmp"
	"slices"
	"strings"

	"bachelorious/pkg/listing"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// matches reports whether l passes every predicate of the filter. Listings
// that are not available never match.
func matches(l listing.Listing, filter listing.Filter) bool {
	if filter.Query != "" &&
		!containsFold(l.Title, filter.Query) &&
		!containsFold(l.Location, filter.Query) &&
		!containsFold(l.Description, filter.Query) {
		return false
	}
	if filter.Type != "" && l.Type != filter.Type {
		return false
	}
	if filter.Location != "" && !containsFold(l.Location, filter.Location) {
		return false
	}
	if l.Price < filter.MinPrice || l.Price > filter.MaxPrice {
		return false
	}
	if l.Area < filter.MinArea || l.Area > filter.MaxArea {
		return false
	}
	return l.Available
}

func filterListings(listings []listing.Listing, filter listing.Filter) []listing.Listing {
	filtered := []listing.Listing{}
	for _, l := range listings {
		if matches(l, filter) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

func compareListings(a, b listing.Listing, sortBy listing.SortKey) int {
	switch sortBy {
	case listing.SortByPrice:
		return cmp.Compare(a.Price, b.Price)
	case listing.SortByArea:
		return cmp.Compare(a.Area, b.Area)
	case listing.SortByDate:
		return listing.ParseCreatedAt(a.CreatedAt).Compare(listing.ParseCreatedAt(b.CreatedAt))
	}
	return 0
}

// sortListings orders listings in place. Equal keys keep their relative
// order, in both directions.
func sortListings(listings []listing.Listing, sortBy listing.SortKey, order listing.SortOrder) {
	slices.SortStableFunc(listings, func(a, b listing.Listing) int {
		c := compareListings(a, b, sortBy)
		if order == listing.SortDesc {
			return -c
		}
		return c
	})
}

func queryListings(listings []listing.Listing, filter listing.Filter) []listing.Listing {
	result := filterListings(listings, filter)
	sortListings(result, filter.SortBy, filter.SortOrder)
	return result
}
