// Package identitytest provides an in-memory identity.Repository for tests.
package identitytest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/identity"
)

type Repository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*identity.Account
	groups   map[string]bool
	members  map[uuid.UUID][]string

	// Profiles ghi lại User record được tạo khi Confirm
	Profiles map[uuid.UUID]identity.Profile

	// AddErr, nếu set, được trả về từ AddToGroup
	AddErr error
}

var _ identity.Repository = (*Repository)(nil)

func NewRepository(groups ...string) *Repository {
	r := &Repository{
		accounts: make(map[uuid.UUID]*identity.Account),
		groups:   make(map[string]bool),
		members:  make(map[uuid.UUID][]string),
		Profiles: make(map[uuid.UUID]identity.Profile),
	}
	for _, g := range groups {
		r.groups[g] = true
	}
	return r
}

func (r *Repository) withGroups(a *identity.Account) *identity.Account {
	cp := *a
	cp.Groups = slices.Clone(r.members[a.ID])
	return &cp
}

func (r *Repository) Create(_ context.Context, a *identity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == a.Email || existing.Username == a.Username {
			return identity.ErrEmailAlreadyExists
		}
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*identity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return r.withGroups(a), nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (r *Repository) FindByID(_ context.Context, id uuid.UUID) (*identity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return r.withGroups(a), nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*identity.Account, error) {
	if id, err := uuid.Parse(username); err == nil {
		return r.FindByID(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Username == username {
			return r.withGroups(a), nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (r *Repository) UpdateConfirmationCode(_ context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok || a.Confirmed {
		return identity.ErrUserNotFound
	}
	a.ConfirmationCode = &code
	a.ConfirmationExpiresAt = &expiresAt
	return nil
}

func (r *Repository) Confirm(_ context.Context, id uuid.UUID, profile identity.Profile, confirmedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return identity.ErrUserNotFound
	}
	if a.Confirmed {
		return identity.ErrAlreadyConfirmed
	}
	a.Confirmed = true
	a.ConfirmationCode = nil
	a.ConfirmationExpiresAt = nil
	a.ConfirmedAt = &confirmedAt
	r.Profiles[id] = profile
	return nil
}

func (r *Repository) ClearExpiredCodes(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.accounts {
		if !a.Confirmed && a.ConfirmationCode != nil && a.ConfirmationExpiresAt.Before(cutoff) {
			a.ConfirmationCode = nil
			a.ConfirmationExpiresAt = nil
			n++
		}
	}
	return n, nil
}

func (r *Repository) AddToGroup(_ context.Context, accountID uuid.UUID, group string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AddErr != nil {
		return false, r.AddErr
	}
	if slices.Contains(r.members[accountID], group) {
		return false, nil
	}
	r.members[accountID] = append(r.members[accountID], group)
	return true, nil
}

func (r *Repository) RemoveFromGroup(_ context.Context, accountID uuid.UUID, group string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[accountID] = slices.DeleteFunc(r.members[accountID], func(g string) bool { return g == group })
	return nil
}

func (r *Repository) ListGroups(_ context.Context, accountID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.members[accountID]), nil
}

func (r *Repository) GroupExists(_ context.Context, group string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groups[group], nil
}

func (r *Repository) EnsureGroups(_ context.Context, groups ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range groups {
		r.groups[g] = true
	}
	return nil
}

// Memberships trả về số membership của account (dùng để assert idempotency)
func (r *Repository) Memberships(accountID uuid.UUID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.members[accountID])
}
