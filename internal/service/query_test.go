package service

import (
	"testing"

	"bachelorious/pkg/listing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(listings []listing.Listing) []string {
	out := []string{}
	for _, l := range listings {
		out = append(out, l.Id)
	}
	return out
}

func sampleCatalog() []listing.Listing {
	return []listing.Listing{
		{Id: "room", Title: "Room", Type: listing.CategoryRoom, Price: 15000, Area: 120, Available: true, CreatedAt: "2024-01-15"},
		{Id: "house", Title: "House", Type: listing.CategoryHouse, Price: 25000, Area: 450, Available: true, CreatedAt: "2024-01-10"},
		{Id: "seat", Title: "Seat", Type: listing.CategorySeat, Price: 8000, Area: 80, Available: false, CreatedAt: "2024-01-12"},
	}
}

func TestQueryRoomExcludesUnavailable(t *testing.T) {
	filter := listing.DefaultFilter()
	filter.Type = listing.CategoryRoom
	filter.SortBy = listing.SortByPrice
	filter.SortOrder = listing.SortAsc

	result := queryListings(sampleCatalog(), filter)
	assert.Equal(t, []string{"room"}, ids(result))
}

func TestQueryDefaultFilterReturnsAvailableByDate(t *testing.T) {
	catalog := sampleCatalog()

	desc := queryListings(catalog, listing.DefaultFilter())
	assert.Equal(t, []string{"room", "house"}, ids(desc))

	filter := listing.DefaultFilter()
	filter.SortOrder = listing.SortAsc
	asc := queryListings(catalog, filter)
	assert.Equal(t, []string{"house", "room"}, ids(asc))
}

func TestQuerySortIsStable(t *testing.T) {
	catalog := []listing.Listing{
		{Id: "a", Price: 10000, Available: true},
		{Id: "b", Price: 5000, Available: true},
		{Id: "c", Price: 10000, Available: true},
		{Id: "d", Price: 10000, Available: true},
	}
	filter := listing.DefaultFilter()
	filter.SortBy = listing.SortByPrice

	filter.SortOrder = listing.SortAsc
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(queryListings(catalog, filter)))

	filter.SortOrder = listing.SortDesc
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(queryListings(catalog, filter)))
}

func TestQueryTextMatch(t *testing.T) {
	catalog := []listing.Listing{
		{Id: "1", Title: "Modern Single Room", Location: "HSR Layout", Available: true},
		{Id: "2", Title: "1BHK", Location: "Koramangala", Description: "near the METRO", Available: true},
		{Id: "3", Title: "Seat", Location: "Whitefield", Available: true},
	}
	tests := []struct {
		name     string
		query    string
		location string
		want     []string
	}{
		{name: "title case insensitive", query: "single", want: []string{"1"}},
		{name: "description", query: "metro", want: []string{"2"}},
		{name: "location via query", query: "white", want: []string{"3"}},
		{name: "location filter", location: "kora", want: []string{"2"}},
		{name: "no match", query: "villa", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := listing.DefaultFilter()
			filter.Query = tt.query
			filter.Location = tt.location
			filter.SortBy = listing.SortByPrice
			got := ids(queryListings(catalog, filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQueryBoundsAreInclusive(t *testing.T) {
	catalog := []listing.Listing{
		{Id: "low", Price: 100, Area: 10, Available: true},
		{Id: "mid", Price: 200, Area: 20, Available: true},
		{Id: "high", Price: 300, Area: 30, Available: true},
	}
	filter := listing.DefaultFilter()
	filter.MinPrice = 100
	filter.MaxPrice = 200
	filter.MinArea = 20
	filter.MaxArea = 30
	filter.SortBy = listing.SortByArea
	filter.SortOrder = listing.SortAsc

	assert.Equal(t, []string{"mid"}, ids(queryListings(catalog, filter)))
}

func TestQueryUnparsableDateSortsAsEpoch(t *testing.T) {
	catalog := []listing.Listing{
		{Id: "new", Available: true, CreatedAt: "2024-02-01T10:00:00.000Z"},
		{Id: "broken", Available: true, CreatedAt: "yesterday"},
		{Id: "old", Available: true, CreatedAt: "1999-12-31"},
	}
	filter := listing.DefaultFilter()
	filter.SortOrder = listing.SortAsc

	assert.Equal(t, []string{"broken", "old", "new"}, ids(queryListings(catalog, filter)))
}

func TestQueryDoesNotReorderInput(t *testing.T) {
	catalog := sampleCatalog()
	before := ids(catalog)
	filter := listing.DefaultFilter()
	filter.SortBy = listing.SortByPrice

	result := queryListings(catalog, filter)
	require.Len(t, result, 2)
	assert.Equal(t, before, ids(catalog))
}

func TestQueryUnknownSortKeyKeepsStoredOrder(t *testing.T) {
	filter := listing.DefaultFilter()
	filter.SortBy = "rating"

	assert.Equal(t, []string{"room", "house"}, ids(queryListings(sampleCatalog(), filter)))
}
