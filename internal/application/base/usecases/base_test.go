package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tickettestutil "helpdesk/internal/application/ticket/testutil"
	"helpdesk/internal/domain/base"
	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/shared/authorization"
)

// mockBaseRepo is an in-memory base.BaseRepository. Member counts are fed
// from the paired user repository by the tests that need them.
type mockBaseRepo struct {
	mu           sync.RWMutex
	bases        map[uint]*base.Base
	nextID       uint
	memberCounts map[uint]int64
}

func newMockBaseRepo() *mockBaseRepo {
	return &mockBaseRepo{
		bases:        make(map[uint]*base.Base),
		memberCounts: make(map[uint]int64),
	}
}

func (m *mockBaseRepo) Save(ctx context.Context, b *base.Base) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID() == 0 {
		m.nextID++
		if err := b.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.bases[b.ID()] = b
	return nil
}

func (m *mockBaseRepo) Update(ctx context.Context, b *base.Base) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bases[b.ID()]; !ok {
		return fmt.Errorf("base not found")
	}
	m.bases[b.ID()] = b
	return nil
}

func (m *mockBaseRepo) Delete(ctx context.Context, baseID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bases[baseID]; !ok {
		return fmt.Errorf("base not found")
	}
	delete(m.bases, baseID)
	return nil
}

func (m *mockBaseRepo) GetByID(ctx context.Context, baseID uint) (*base.Base, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bases[baseID]
	if !ok {
		return nil, fmt.Errorf("base not found")
	}
	return b, nil
}

func (m *mockBaseRepo) GetByCode(ctx context.Context, code string) (*base.Base, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bases {
		if b.Code() == code {
			return b, nil
		}
	}
	return nil, fmt.Errorf("base not found")
}

func (m *mockBaseRepo) List(ctx context.Context, activeOnly bool) ([]*base.Base, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*base.Base
	for _, b := range m.bases {
		if activeOnly && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBaseRepo) CountMembers(ctx context.Context, baseID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.memberCounts[baseID], nil
}

func (m *mockBaseRepo) addBase(t *testing.T, id uint, code string) *base.Base {
	t.Helper()
	now := time.Now().UTC()
	b, err := base.ReconstructBase(id, "Base "+code, code, "", true, 1, now, now)
	if err != nil {
		t.Fatalf("ReconstructBase: %v", err)
	}
	m.mu.Lock()
	m.bases[id] = b
	if id > m.nextID {
		m.nextID = id
	}
	m.mu.Unlock()
	return b
}

func newMember(t *testing.T, id uint, baseIDs ...uint) *user.User {
	t.Helper()
	email, err := vo.NewEmail(fmt.Sprintf("member%d@example.com", id))
	if err != nil {
		t.Fatalf("NewEmail: %v", err)
	}
	now := time.Now().UTC()
	u, err := user.ReconstructUser(
		id, email, fmt.Sprintf("Member %d", id), "$2a$10$hash",
		authorization.RoleUser, baseIDs, true, 1, now, now, nil,
	)
	if err != nil {
		t.Fatalf("ReconstructUser: %v", err)
	}
	return u
}

func TestCreateBase(t *testing.T) {
	repo := newMockBaseRepo()
	uc := NewCreateBaseUseCase(repo, tickettestutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), CreateBaseCommand{
		Name:        "North Campus",
		Code:        "NORTH",
		Description: "Main clinic site",
		UserRole:    authorization.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.ID == 0 || result.Code != "NORTH" || !result.Active {
		t.Errorf("result = %+v, want persisted active base", result)
	}
}

func TestCreateBase_DuplicateCode(t *testing.T) {
	repo := newMockBaseRepo()
	repo.addBase(t, 1, "NORTH")

	uc := NewCreateBaseUseCase(repo, tickettestutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), CreateBaseCommand{
		Name:     "Another North",
		Code:     "NORTH",
		UserRole: authorization.RoleAdmin,
	})
	if err == nil {
		t.Fatal("Execute() expected conflict for duplicate code, got nil")
	}
	if !strings.Contains(err.Error(), "already in use") {
		t.Errorf("Execute() error = %v, want code conflict", err)
	}
}

func TestCreateBase_NonAdminForbidden(t *testing.T) {
	repo := newMockBaseRepo()
	uc := NewCreateBaseUseCase(repo, tickettestutil.NewMockLogger())

	for _, role := range []authorization.UserRole{authorization.RoleHIS, authorization.RoleUser, authorization.RoleViewer} {
		_, err := uc.Execute(context.Background(), CreateBaseCommand{
			Name:     "North Campus",
			Code:     "NORTH",
			UserRole: role,
		})
		if err == nil {
			t.Errorf("role %s should not manage bases", role)
		}
	}
}

func TestListBases_ActiveOnly(t *testing.T) {
	repo := newMockBaseRepo()
	repo.addBase(t, 1, "NORTH")
	retired := repo.addBase(t, 2, "OLD")
	retired.Deactivate()

	uc := NewListBasesUseCase(repo, tickettestutil.NewMockLogger())

	all, err := uc.Execute(context.Background(), ListBasesQuery{})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if all.Total != 2 {
		t.Errorf("all.Total = %d, want 2", all.Total)
	}

	active, err := uc.Execute(context.Background(), ListBasesQuery{ActiveOnly: true})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if active.Total != 1 || active.Bases[0].Code != "NORTH" {
		t.Errorf("active = %+v, want only NORTH", active)
	}
}

func TestUpdateBase(t *testing.T) {
	repo := newMockBaseRepo()
	repo.addBase(t, 1, "NORTH")

	uc := NewUpdateBaseUseCase(repo, tickettestutil.NewMockLogger())

	name := "North Campus (renamed)"
	inactive := false
	result, err := uc.Execute(context.Background(), UpdateBaseCommand{
		BaseID:   1,
		Name:     &name,
		Active:   &inactive,
		UserRole: authorization.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Name != name || result.Active {
		t.Errorf("result = %+v, want renamed inactive base", result)
	}
	// Code is immutable.
	if result.Code != "NORTH" {
		t.Errorf("result.Code = %q, want NORTH", result.Code)
	}
}

func TestDeleteBase_BlockedByMembers(t *testing.T) {
	repo := newMockBaseRepo()
	repo.addBase(t, 1, "NORTH")
	repo.memberCounts[1] = 3

	uc := NewDeleteBaseUseCase(repo, tickettestutil.NewMockLogger())

	err := uc.Execute(context.Background(), DeleteBaseCommand{BaseID: 1, UserRole: authorization.RoleAdmin})
	if err == nil {
		t.Fatal("Execute() expected conflict for non-empty base, got nil")
	}
	if !strings.Contains(err.Error(), "still has members") {
		t.Errorf("Execute() error = %v, want member conflict", err)
	}

	repo.memberCounts[1] = 0
	if err := uc.Execute(context.Background(), DeleteBaseCommand{BaseID: 1, UserRole: authorization.RoleAdmin}); err != nil {
		t.Fatalf("Execute() after drain unexpected error = %v", err)
	}
	if _, err := repo.GetByID(context.Background(), 1); err == nil {
		t.Error("base should be gone after delete")
	}
}

func TestSetBaseMembers(t *testing.T) {
	baseRepo := newMockBaseRepo()
	baseRepo.addBase(t, 1, "NORTH")

	userRepo := tickettestutil.NewMockUserRepository()
	userRepo.AddUser(newMember(t, 10, 1)) // stays
	userRepo.AddUser(newMember(t, 11, 1)) // removed
	userRepo.AddUser(newMember(t, 12))    // added

	uc := NewSetBaseMembersUseCase(baseRepo, userRepo, tickettestutil.NewMockTransactionManager(), tickettestutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), SetBaseMembersCommand{
		BaseID:   1,
		UserIDs:  []uint{10, 12},
		UserRole: authorization.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Added != 1 || result.Removed != 1 {
		t.Errorf("result = %+v, want 1 added 1 removed", result)
	}

	for _, tc := range []struct {
		userID uint
		member bool
	}{
		{10, true},
		{11, false},
		{12, true},
	} {
		u, err := userRepo.GetByID(context.Background(), tc.userID)
		if err != nil {
			t.Fatalf("GetByID(%d): %v", tc.userID, err)
		}
		if got := u.BelongsToBase(1); got != tc.member {
			t.Errorf("user %d membership = %v, want %v", tc.userID, got, tc.member)
		}
	}
}

func TestSetBaseMembers_UnknownUser(t *testing.T) {
	baseRepo := newMockBaseRepo()
	baseRepo.addBase(t, 1, "NORTH")

	userRepo := tickettestutil.NewMockUserRepository()
	userRepo.AddUser(newMember(t, 10, 1))

	uc := NewSetBaseMembersUseCase(baseRepo, userRepo, tickettestutil.NewMockTransactionManager(), tickettestutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), SetBaseMembersCommand{
		BaseID:   1,
		UserIDs:  []uint{10, 999},
		UserRole: authorization.RoleAdmin,
	})
	if err == nil {
		t.Fatal("Execute() expected error for unknown user, got nil")
	}

	// Nothing changed: validation happens before any write.
	u, _ := userRepo.GetByID(context.Background(), 10)
	if !u.BelongsToBase(1) {
		t.Error("existing membership must survive a failed update")
	}
}
