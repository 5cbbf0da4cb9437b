package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/domain"
)

const (
	projectsCollection = "projects"

	fieldDonations = "donationsXLM"
	fieldClaimed   = "claimed"
	fieldClaimedAt = "claimedAt"
	fieldClaimedBy = "claimedBy"
)

// ProjectRepo handles Firestore operations for campaign documents.
type ProjectRepo struct {
	client *firestore.Client
}

func NewProjectRepo(client *firestore.Client) *ProjectRepo {
	return &ProjectRepo{client: client}
}

// Create inserts a new project document and returns the id Firestore assigned.
func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) (string, error) {
	ref, _, err := r.client.Collection(projectsCollection).Add(ctx, p)
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	return ref.ID, nil
}

// List returns every project document. Documents written before the
// donations field existed decode with DonationsXLM at zero, which is the
// value the marketplace expects.
func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	iter := r.client.Collection(projectsCollection).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Project, 0, 16)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}

		var p domain.Project
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode project %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

// GetByID retrieves a single project by document id.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	doc, err := r.client.Collection(projectsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	var p domain.Project
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// IncrementDonations adds amount to the project's donation total as a single
// server-side atomic increment, so concurrent donations never lose updates.
// A confirmation read returns the post-increment total.
func (r *ProjectRepo) IncrementDonations(ctx context.Context, id string, amount float64) (float64, error) {
	ref := r.client.Collection(projectsCollection).Doc(id)

	_, err := ref.Update(ctx, []firestore.Update{
		{Path: fieldDonations, Value: firestore.Increment(amount)},
	})
	if status.Code(err) == codes.NotFound {
		return 0, domain.ErrProjectNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment donations: %w", err)
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("read donation total: %w", err)
	}

	var p domain.Project
	if err := doc.DataTo(&p); err != nil {
		return 0, fmt.Errorf("decode project %s: %w", id, err)
	}
	return p.DonationsXLM, nil
}

// Claim marks the project claimed by wallet inside a transaction. The
// eligibility read and the claimed write commit together, so of two racing
// claims at most one can observe claimed=false and succeed.
func (r *ProjectRepo) Claim(ctx context.Context, id, wallet string) (*domain.Project, error) {
	ref := r.client.Collection(projectsCollection).Doc(id)

	var claimed domain.Project
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return domain.ErrProjectNotFound
		}
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}

		var p domain.Project
		if err := doc.DataTo(&p); err != nil {
			return fmt.Errorf("decode project %s: %w", id, err)
		}
		p.ID = doc.Ref.ID

		if err := p.ClaimableBy(wallet); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Update(ref, []firestore.Update{
			{Path: fieldClaimed, Value: true},
			{Path: fieldClaimedAt, Value: now},
			{Path: fieldClaimedBy, Value: wallet},
		}); err != nil {
			return fmt.Errorf("mark claimed: %w", err)
		}

		p.Claimed = true
		p.ClaimedAt = &now
		p.ClaimedBy = wallet
		claimed = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &claimed, nil
}
