package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/domain"
)

func setupCache(t *testing.T) (*ListingCache, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewListingCache(client), mr, client
}

func TestListingCacheRoundTrip(t *testing.T) {
	cache, _, _ := setupCache(t)
	ctx := context.Background()

	_, ok := cache.GetListing(ctx)
	assert.False(t, ok, "cold cache misses")

	projects := []domain.Project{
		{ID: "p1", ProjectID: "alpha", Creator: "GA", Goal: 100, DonationsXLM: 40},
		{ID: "p2", ProjectID: "beta", Creator: "GB", Goal: 200},
	}
	require.NoError(t, cache.SetListing(ctx, projects))

	got, ok := cache.GetListing(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].ProjectID)
	assert.Equal(t, 40.0, got[0].DonationsXLM)
}

func TestListingCacheInvalidate(t *testing.T) {
	cache, _, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetListing(ctx, []domain.Project{{ID: "p1"}}))
	cache.Invalidate(ctx)

	_, ok := cache.GetListing(ctx)
	assert.False(t, ok)
}

func TestListingCacheExpires(t *testing.T) {
	cache, mr, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetListing(ctx, []domain.Project{{ID: "p1"}}))

	mr.FastForward(listingTTL + time.Second)

	_, ok := cache.GetListing(ctx)
	assert.False(t, ok, "listing expires after its TTL")
}

func TestPublishEvent(t *testing.T) {
	cache, _, client := setupCache(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "funding:events:p1")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx) // wait for the subscription to settle
	require.NoError(t, err)

	cache.PublishEvent(ctx, Event{
		Type:      "donation",
		ProjectID: "p1",
		Wallet:    "GDONOR",
		Amount:    50,
		Total:     150,
		At:        time.Now().UTC(),
	})

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"type":"donation"`)
		assert.Contains(t, msg.Payload, `"project_id":"p1"`)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received on the project channel")
	}
}
