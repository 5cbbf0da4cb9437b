package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	dondomain "github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/donations/domain"
	donrepo "github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/donations/repository"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/domain"
	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/repository"
)

// ErrHistoryDisabled is returned when the donation history endpoint is hit
// but no history database was configured.
var ErrHistoryDisabled = errors.New("donation history is not enabled")

// ProjectRepository is the store the workflows run against. The production
// implementation is the Firestore repo; tests use an in-memory one.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (string, error)
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	IncrementDonations(ctx context.Context, id string, amount float64) (float64, error)
	Claim(ctx context.Context, id, wallet string) (*domain.Project, error)
}

// ProjectService handles business logic for campaigns: creation, listing,
// the donation workflow and the claim workflow. Cache and history are
// optional collaborators; a nil pointer disables the corresponding feature.
type ProjectService struct {
	repo    ProjectRepository
	cache   *repository.ListingCache
	history *donrepo.HistoryRepo
}

func NewProjectService(repo ProjectRepository, cache *repository.ListingCache, history *donrepo.HistoryRepo) *ProjectService {
	return &ProjectService{
		repo:    repo,
		cache:   cache,
		history: history,
	}
}

// CreateProject inserts a fresh campaign with zero donations and returns the
// store-assigned id. Field presence is validated at the HTTP boundary.
func (s *ProjectService) CreateProject(ctx context.Context, p *domain.Project) (string, error) {
	p.DonationsXLM = 0
	p.Claimed = false
	p.ClaimedAt = nil
	p.ClaimedBy = ""
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return "", err
	}
	p.ID = id

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return id, nil
}

// List returns all campaigns, served from the cache when it is warm.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if s.cache != nil {
		if projects, ok := s.cache.GetListing(ctx); ok {
			return projects, nil
		}
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, projects); err != nil {
			log.Printf("[projects] prime listing cache: %v", err)
		}
	}
	return projects, nil
}

// Get returns a single campaign by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Donate applies a donation to a project and returns the new total.
// The amount must be a positive finite number; there is no upper cap, so a
// project can be funded past its goal.
func (s *ProjectService) Donate(ctx context.Context, projectID, wallet string, amount float64) (float64, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, domain.ErrInvalidAmount
	}

	total, err := s.repo.IncrementDonations(ctx, projectID, amount)
	if err != nil {
		return 0, err
	}

	// The donation is committed at this point. History and cache are
	// best effort and must not fail the request.
	if s.history != nil {
		rec := &dondomain.Donation{
			ProjectID: projectID,
			Donor:     wallet,
			AmountXLM: amount,
		}
		if err := s.history.Record(ctx, rec); err != nil {
			log.Printf("[projects] record donation history: %v", err)
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
		s.cache.PublishEvent(ctx, repository.Event{
			Type:      "donation",
			ProjectID: projectID,
			Wallet:    wallet,
			Amount:    amount,
			Total:     total,
			At:        time.Now().UTC(),
		})
	}
	return total, nil
}

// Claim transitions the project to claimed when every eligibility condition
// holds and returns the project as of the claim. No funds move; it is a
// bookkeeping flag only.
func (s *ProjectService) Claim(ctx context.Context, projectID, wallet string) (*domain.Project, error) {
	p, err := s.repo.Claim(ctx, projectID, wallet)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
		s.cache.PublishEvent(ctx, repository.Event{
			Type:      "claim",
			ProjectID: projectID,
			Wallet:    wallet,
			Total:     p.DonationsXLM,
			At:        time.Now().UTC(),
		})
	}
	return p, nil
}

// Donations returns the recorded donation history for a project.
func (s *ProjectService) Donations(ctx context.Context, projectID string) ([]dondomain.Donation, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.ListByProject(ctx, projectID)
}

// RefreshListingCache re-primes the cached listing from the store. Used by
// the cron scheduler to keep the marketplace page warm.
func (s *ProjectService) RefreshListingCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	projects, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	return s.cache.SetListing(ctx, projects)
}
