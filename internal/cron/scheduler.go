package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/service"
)

type Scheduler struct {
	projects *service.ProjectService
}

func NewScheduler(projects *service.ProjectService) *Scheduler {
	return &Scheduler{projects: projects}
}

// Start initializes cron tasks. The listing cache is re-primed on an
// interval so the marketplace page stays warm after invalidations.
func (s *Scheduler) Start() {
	c := cron.New()

	_, err := c.AddFunc("@every 5m", func() {
		s.refreshListing()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (refreshing listing cache every 5m)")
	c.Start()
}

func (s *Scheduler) refreshListing() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.projects.RefreshListingCache(ctx); err != nil {
		log.Printf("Listing cache refresh failed: %v", err)
		return
	}
	log.Println("Listing cache refreshed at:", time.Now().Format(time.RFC1123))
}
