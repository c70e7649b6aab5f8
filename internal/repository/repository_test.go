package repository

import (
	"context"
	"encoding/json"
	"testing"

	"bachelorious/pkg/customerror"
	"bachelorious/pkg/listing"
	"bachelorious/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAccountsEmptyWhenNeverWritten(t *testing.T) {
	userRepo := NewUserRepository(NewMemoryStore())
	accounts, err := userRepo.GetAccounts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestAccountsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	userRepo := NewUserRepository(store)
	accounts := []user.StoredAccount{
		{Account: user.Account{Id: "1", Email: "a@x.io", Name: "A", Role: user.RoleOwner, Phone: "9876543210"}, Password: "secret1"},
		{Account: user.Account{Id: "2", Email: "b@x.io", Name: "B", Role: user.RoleSeeker}, Password: "secret2"},
	}
	require.NoError(t, userRepo.SaveAccounts(ctx, accounts))

	got, err := userRepo.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)

	raw, _, err := store.Load(ctx, AccountsKey)
	require.NoError(t, err)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(raw, &docs))
	assert.Equal(t, map[string]any{
		"id": "1", "email": "a@x.io", "name": "A", "userType": "owner", "phone": "9876543210", "password": "secret1",
	}, docs[0])
	assert.NotContains(t, docs[1], "phone")
}

func TestGetAccountsCorrupt(t *testing.T) {
	tests := map[string]string{
		"not json":     "nope",
		"object":       `{"id":"1"}`,
		"id type":      `[{"id":7,"email":"a@x.io","userType":"seeker"}]`,
		"unknown role": `[{"id":"1","email":"a@x.io","userType":"landlord"}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Save(context.Background(), AccountsKey, []byte(raw)))
			_, err := NewUserRepository(store).GetAccounts(context.Background())
			require.ErrorIs(t, err, customerror.ErrCorruptState)
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	userRepo := NewUserRepository(NewMemoryStore())

	account, err := userRepo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, account)

	want := &user.Account{Id: "1", Email: "a@x.io", Name: "A", Role: user.RoleSeeker}
	require.NoError(t, userRepo.SaveSession(ctx, want))
	got, err := userRepo.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, userRepo.DeleteSession(ctx))
	got, err = userRepo.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNullSessionIsLoggedOut(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), SessionKey, []byte("null")))
	account, err := NewUserRepository(store).GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestSeedCatalog(t *testing.T) {
	seed, err := NewListingRepository(NewMemoryStore()).Seed()
	require.NoError(t, err)
	require.Len(t, seed, 4)
	for _, l := range seed {
		assert.True(t, l.Type.Valid(), "listing %s", l.Id)
		assert.True(t, l.Available, "listing %s", l.Id)
		assert.NotEmpty(t, l.Images, "listing %s", l.Id)
	}
	assert.Equal(t, listing.CategorySeat, seed[2].Type)
	assert.Equal(t, float64(8000), seed[2].Price)
	assert.Equal(t, "2024-01-08", seed[3].CreatedAt)
}

func TestListingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	listingRepo := NewListingRepository(NewMemoryStore())

	_, found, err := listingRepo.GetListings(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	seed, err := listingRepo.Seed()
	require.NoError(t, err)
	require.NoError(t, listingRepo.SaveListings(ctx, seed))
	got, found, err := listingRepo.GetListings(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, seed, got)
}

func TestGetListingsCorrupt(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), ListingsKey, []byte(`[{"id":"1","type":"villa"}]`)))
	_, found, err := NewListingRepository(store).GetListings(context.Background())
	require.ErrorIs(t, err, customerror.ErrCorruptState)
	assert.True(t, found)
}
