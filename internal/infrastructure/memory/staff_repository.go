package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo agentes de campo.
type StaffRepo struct {
	mu    sync.RWMutex
	users map[string]entity.StaffUser
}

// NewStaffRepository precarga los usuarios dados.
func NewStaffRepository(seed ...entity.StaffUser) *StaffRepo {
	r := &StaffRepo{users: make(map[string]entity.StaffUser, len(seed))}
	for _, u := range seed {
		u.Permissions = append([]entity.Permission(nil), u.Permissions...)
		r.users[u.ID] = u
	}
	return r
}

// DefaultStaff agentes precargados en modo memory; son los mismos de 001_init.sql.
func DefaultStaff() []entity.StaffUser {
	return []entity.StaffUser{
		{ID: "1", Email: "agent@example.com", Name: "Field Agent", Role: entity.RoleStaff, Status: "active",
			Permissions: []entity.Permission{entity.PermDataVerification}},
		{ID: "2", Email: "supervisor@example.com", Name: "Field Supervisor", Role: entity.RoleStaff, Status: "active"},
	}
}

func (r *StaffRepo) GetByID(_ context.Context, id string) (*entity.StaffUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.Permissions = append([]entity.Permission(nil), u.Permissions...)
	return &u, nil
}

func (r *StaffRepo) GetByEmail(_ context.Context, email string) (*entity.StaffUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			u.Permissions = append([]entity.Permission(nil), u.Permissions...)
			return &u, nil
		}
	}
	return nil, nil
}

func (r *StaffRepo) Update(_ context.Context, u *entity.StaffUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *u
	c.Permissions = append([]entity.Permission(nil), u.Permissions...)
	r.users[u.ID] = c
	return nil
}
