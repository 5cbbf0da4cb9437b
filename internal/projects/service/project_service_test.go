package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/domain"
)

// memRepo is an in-memory ProjectRepository with the same atomicity
// guarantees the Firestore repo provides: field-level increments and a
// claim that checks and writes under one lock.
type memRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	nextID   int
}

func newMemRepo() *memRepo {
	return &memRepo{projects: make(map[string]*domain.Project)}
}

func (m *memRepo) Create(_ context.Context, p *domain.Project) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("proj-%d", m.nextID)
	cp := *p
	cp.ID = id
	m.projects[id] = &cp
	return id, nil
}

func (m *memRepo) List(_ context.Context) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) IncrementDonations(_ context.Context, id string, amount float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return 0, domain.ErrProjectNotFound
	}
	p.DonationsXLM += amount
	return p.DonationsXLM, nil
}

func (m *memRepo) Claim(_ context.Context, id, wallet string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if err := p.ClaimableBy(wallet); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.Claimed = true
	p.ClaimedAt = &now
	p.ClaimedBy = wallet
	cp := *p
	return &cp, nil
}

func newTestProject(t *testing.T, svc *ProjectService, goal float64) string {
	t.Helper()
	id, err := svc.CreateProject(context.Background(), &domain.Project{
		ProjectID:   "test-campaign",
		Creator:     "GCREATOR",
		Goal:        goal,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
		Description: "a test campaign",
	})
	require.NoError(t, err)
	return id
}

func TestCreateProject_InitializesFundingState(t *testing.T) {
	repo := newMemRepo()
	svc := NewProjectService(repo, nil, nil)

	id, err := svc.CreateProject(context.Background(), &domain.Project{
		ProjectID:    "seed",
		Creator:      "GCREATOR",
		Goal:         500,
		Deadline:     time.Now().Add(time.Hour),
		Description:  "seed round",
		DonationsXLM: 999, // must be overridden
		Claimed:      true,
	})
	require.NoError(t, err)

	p, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Zero(t, p.DonationsXLM)
	assert.False(t, p.Claimed)
	assert.Empty(t, p.ClaimedBy)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestDonate_IncrementsExactly(t *testing.T) {
	repo := newMemRepo()
	svc := NewProjectService(repo, nil, nil)
	id := newTestProject(t, svc, 1000)

	total, err := svc.Donate(context.Background(), id, "GDONOR", 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, total)

	total, err = svc.Donate(context.Background(), id, "GDONOR", 25)
	require.NoError(t, err)
	assert.Equal(t, 175.0, total)
}

func TestDonate_RepeatedSmallIncrementsAreExact(t *testing.T) {
	repo := newMemRepo()
	svc := NewProjectService(repo, nil, nil)
	id := newTestProject(t, svc, 1000)

	var total float64
	var err error
	for i := 0; i < 40; i++ {
		total, err = svc.Donate(context.Background(), id, "GDONOR", 0.25)
		require.NoError(t, err)
	}
	assert.Equal(t, 10.0, total)
}

func TestDonate_RejectsInvalidAmounts(t *testing.T) {
	repo := newMemRepo()
	svc := NewProjectService(repo, nil, nil)
	id := newTestProject(t, svc, 1000)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.Donate(context.Background(), id, "GDONOR", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %v", amount)
	}

	// No mutation happened.
	p, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Zero(t, p.DonationsXLM)
}

func TestDonate_UnknownProject(t *testing.T) {
	svc := NewProjectService(newMemRepo(), nil, nil)

	_, err := svc.Donate(context.Background(), "missing", "GDONOR", 10)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestDonate_AllowsOverfunding(t *testing.T) {
	repo := newMemRepo()
	svc := NewProjectService(repo, nil, nil)
	id := newTestProject(t, svc, 100)

	total, err := svc.Donate(context.Background(), id, "GDONOR", 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, total, "donations are not capped at the goal")
}

func TestDonate_ConcurrentDonationsNeverLoseUpdates(t *testing.T) {
	repo := newMemRepo()
	svc := NewProjectService(repo, nil, nil)
	id := newTestProject(t, svc, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Donate(context.Background(), id, "GDONOR", 100)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 200.0, p.DonationsXLM)
}

func TestClaim_ThresholdScenario(t *testing.T) {
	repo := newMemRepo()
	svc := NewProjectService(repo, nil, nil)
	id := newTestProject(t, svc, 1000)

	_, err := svc.Donate(context.Background(), id, "GDONOR", 750)
	require.NoError(t, err)

	// 75% < 80%: the creator cannot claim yet.
	_, err = svc.Claim(context.Background(), id, "GCREATOR")
	assert.ErrorIs(t, err, domain.ErrGoalNotReached)

	_, err = svc.Donate(context.Background(), id, "GDONOR", 250)
	require.NoError(t, err)

	// 100%: claim succeeds and reports the claimed amount.
	p, err := svc.Claim(context.Background(), id, "GCREATOR")
	require.NoError(t, err)
	assert.True(t, p.Claimed)
	assert.Equal(t, 1000.0, p.DonationsXLM)
	assert.Equal(t, "GCREATOR", p.ClaimedBy)
	require.NotNil(t, p.ClaimedAt)
}

func TestClaim_EachConditionGatesIndependently(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown project", func(t *testing.T) {
		svc := NewProjectService(newMemRepo(), nil, nil)
		_, err := svc.Claim(ctx, "missing", "GCREATOR")
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("wrong caller on a fully funded project", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewProjectService(repo, nil, nil)
		id := newTestProject(t, svc, 1000)
		_, err := svc.Donate(ctx, id, "GDONOR", 1000)
		require.NoError(t, err)

		_, err = svc.Claim(ctx, id, "GINTRUDER")
		assert.ErrorIs(t, err, domain.ErrNotCreator)
	})

	t.Run("creator below threshold", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewProjectService(repo, nil, nil)
		id := newTestProject(t, svc, 1000)
		_, err := svc.Donate(ctx, id, "GDONOR", 799)
		require.NoError(t, err)

		_, err = svc.Claim(ctx, id, "GCREATOR")
		assert.ErrorIs(t, err, domain.ErrGoalNotReached)
	})

	t.Run("double claim fails with already claimed", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewProjectService(repo, nil, nil)
		id := newTestProject(t, svc, 1000)
		_, err := svc.Donate(ctx, id, "GDONOR", 1000)
		require.NoError(t, err)

		_, err = svc.Claim(ctx, id, "GCREATOR")
		require.NoError(t, err)

		_, err = svc.Claim(ctx, id, "GCREATOR")
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	})
}

func TestDonations_DisabledWithoutHistory(t *testing.T) {
	svc := NewProjectService(newMemRepo(), nil, nil)

	_, err := svc.Donations(context.Background(), "proj-1")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}
