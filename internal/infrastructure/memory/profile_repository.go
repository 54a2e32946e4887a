// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORAGE_DRIVER=memory; los datos no sobreviven al proceso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles y ubicaciones protegidos por un mutex.
type ProfileRepo struct {
	mu        sync.RWMutex
	profiles  map[string]entity.OrganizationProfile // por organization_id
	locations map[string]entity.LocationData        // por id
}

// NewProfileRepository construye el repositorio vacío.
func NewProfileRepository() *ProfileRepo {
	return &ProfileRepo{
		profiles:  make(map[string]entity.OrganizationProfile),
		locations: make(map[string]entity.LocationData),
	}
}

func (r *ProfileRepo) GetByOrganization(_ context.Context, organizationID string) (*entity.OrganizationProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[organizationID]
	if !ok {
		return nil, nil
	}
	p.Locations = r.locationsOf(organizationID)
	return &p, nil
}

func (r *ProfileRepo) Upsert(_ context.Context, profile *entity.OrganizationProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *profile
	p.Locations = nil
	r.profiles[p.OrganizationID] = p
	return nil
}

func (r *ProfileRepo) UpdateStep(_ context.Context, organizationID, step string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[organizationID]
	if !ok {
		return nil
	}
	p.CurrentStep = step
	r.profiles[organizationID] = p
	return nil
}

func (r *ProfileRepo) SetVerification(_ context.Context, organizationID, profileStatus, orgVerification string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[organizationID]; ok {
		if profileStatus != "" {
			p.VerificationStatus = profileStatus
		}
		if orgVerification != "" {
			p.OrganizationVerification = orgVerification
		}
		r.profiles[organizationID] = p
	}
	return nil
}

func (r *ProfileRepo) AddLocation(_ context.Context, location *entity.LocationData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := *location
	l.Gallery = entity.Gallery{
		Images: append([]string(nil), location.Gallery.Images...),
		Videos: append([]string(nil), location.Gallery.Videos...),
	}
	r.locations[l.ID] = l
	return nil
}

func (r *ProfileRepo) GetLocation(_ context.Context, id string) (*entity.LocationData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *ProfileRepo) ListLocations(_ context.Context, organizationID string) ([]entity.LocationData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locationsOf(organizationID), nil
}

// DeleteLocation borra y renumera las posiciones restantes.
func (r *ProfileRepo) DeleteLocation(_ context.Context, organizationID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locations[id]
	if !ok || l.OrganizationID != organizationID {
		return nil
	}
	delete(r.locations, id)
	for i, rest := range r.locationsOf(organizationID) {
		rest.Position = i
		r.locations[rest.ID] = rest
	}
	return nil
}

func (r *ProfileRepo) SetLocationStatus(_ context.Context, ids []string, paymentStatus, verificationStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		l, ok := r.locations[id]
		if !ok {
			continue
		}
		if paymentStatus != "" {
			l.PaymentStatus = paymentStatus
		}
		if verificationStatus != "" {
			l.VerificationStatus = verificationStatus
		}
		r.locations[id] = l
	}
	return nil
}

// locationsOf requiere el mutex tomado.
func (r *ProfileRepo) locationsOf(organizationID string) []entity.LocationData {
	out := make([]entity.LocationData, 0)
	for _, l := range r.locations {
		if l.OrganizationID == organizationID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
