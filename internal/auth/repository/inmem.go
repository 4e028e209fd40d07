package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/savageut/scheduler-backend/internal/auth/domain"
)

// InMemUserStore backs auth tests and local development.
type InMemUserStore struct {
	mu          sync.Mutex
	users       map[int64]domain.User
	invitations map[int64]domain.Invitation
	nextUserID  int64
	nextInvID   int64
}

func NewInMemUserStore() *InMemUserStore {
	return &InMemUserStore{
		users:       make(map[int64]domain.User),
		invitations: make(map[int64]domain.Invitation),
		nextUserID:  1,
		nextInvID:   1,
	}
}

var _ UserStore = (*InMemUserStore)(nil)

func (s *InMemUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *InMemUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *InMemUserStore) Create(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = *u
	return nil
}

func (s *InMemUserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *InMemUserStore) SetActive(_ context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	s.users[id] = u
	return nil
}

func (s *InMemUserStore) CreateInvitation(_ context.Context, inv *domain.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.nextInvID
	s.nextInvID++
	inv.CreatedAt = time.Now().UTC()
	s.invitations[inv.ID] = *inv
	return nil
}

func (s *InMemUserStore) GetInvitationByCode(_ context.Context, code string) (*domain.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invitations {
		if inv.Code == code {
			inv := inv
			return &inv, nil
		}
	}
	return nil, domain.ErrInvitationInvalid
}

func (s *InMemUserStore) MarkInvitationUsed(_ context.Context, id int64, usedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[id]
	if !ok {
		return domain.ErrInvitationInvalid
	}
	inv.Used = true
	inv.UsedAt = &usedAt
	s.invitations[id] = inv
	return nil
}
