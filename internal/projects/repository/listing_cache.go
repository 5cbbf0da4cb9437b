package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/domain"
)

const (
	listingKey         = "funding:projects:all"  // Cached marketplace listing
	eventChannelPrefix = "funding:events:"       // Pub/Sub channel per project: funding:events:{project_id}
	listingTTL         = 5 * time.Minute
)

// Event is pushed on a project's channel whenever its funding state changes.
type Event struct {
	Type      string    `json:"type"` // "donation" or "claim"
	ProjectID string    `json:"project_id"`
	Wallet    string    `json:"wallet"`
	Amount    float64   `json:"amount"`
	Total     float64   `json:"total"`
	At        time.Time `json:"at"`
}

// ListingCache keeps the marketplace listing warm in Redis and fans out
// funding events over Pub/Sub so connected UIs can update progress live.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// GetListing returns the cached listing, or ok=false on a miss.
func (c *ListingCache) GetListing(ctx context.Context) ([]domain.Project, bool) {
	data, err := c.client.Get(ctx, listingKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		// A broken cache must never break the listing itself.
		log.Printf("[cache] get listing: %v", err)
		return nil, false
	}

	var projects []domain.Project
	if err := json.Unmarshal([]byte(data), &projects); err != nil {
		log.Printf("[cache] decode listing: %v", err)
		return nil, false
	}
	return projects, true
}

// SetListing stores the listing under a TTL.
func (c *ListingCache) SetListing(ctx context.Context, projects []domain.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}
	if err := c.client.Set(ctx, listingKey, data, listingTTL).Err(); err != nil {
		return fmt.Errorf("set listing: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing after any mutation.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		log.Printf("[cache] invalidate listing: %v", err)
	}
}

// PublishEvent sends a funding event on the project's channel. Delivery is
// best effort; a publish failure is logged and otherwise ignored.
func (c *ListingCache) PublishEvent(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[cache] marshal event: %v", err)
		return
	}
	if err := c.client.Publish(ctx, c.eventChannel(ev.ProjectID), data).Err(); err != nil {
		log.Printf("[cache] publish event: %v", err)
	}
}

func (c *ListingCache) eventChannel(projectID string) string {
	return fmt.Sprintf("%s%s", eventChannelPrefix, projectID)
}
