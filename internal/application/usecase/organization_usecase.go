package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

var emailCheck = validator.New()

// OrganizationUseCase CRUD de organizaciones; el registro vive en el backend.
// Valida la entrada antes de cualquier llamada y reenvía el token del llamador.
type OrganizationUseCase struct {
	backend ports.OrganizationBackend
}

func NewOrganizationUseCase(backend ports.OrganizationBackend) *OrganizationUseCase {
	return &OrganizationUseCase{backend: backend}
}

func (uc *OrganizationUseCase) List(ctx context.Context, token string, in dto.OrganizationListRequest) (json.RawMessage, error) {
	q := map[string]string{}
	if in.Page > 0 {
		q["page"] = strconv.Itoa(in.Page)
	}
	if in.Limit > 0 {
		q["limit"] = strconv.Itoa(in.Limit)
	}
	if s := strings.TrimSpace(in.Search); s != "" {
		q["search"] = s
	}
	if in.Status != "" {
		q["status"] = in.Status
	}
	return uc.backend.List(ctx, token, q)
}

func (uc *OrganizationUseCase) Get(ctx context.Context, token, id string) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Validation("organization id is required")
	}
	return uc.backend.Get(ctx, token, id)
}

// Create hace exactamente un POST al backend y devuelve su campo data.
func (uc *OrganizationUseCase) Create(ctx context.Context, token string, in dto.OrganizationRequest) (json.RawMessage, error) {
	if err := validateOrganization(in); err != nil {
		return nil, err
	}
	return uc.backend.Create(ctx, token, in)
}

func (uc *OrganizationUseCase) Update(ctx context.Context, token, id string, in dto.OrganizationRequest) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Validation("organization id is required")
	}
	if err := validateOrganization(in); err != nil {
		return nil, err
	}
	return uc.backend.Update(ctx, token, id, in)
}

func (uc *OrganizationUseCase) Delete(ctx context.Context, token, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("organization id is required")
	}
	return uc.backend.Delete(ctx, token, id)
}

func validateOrganization(in dto.OrganizationRequest) error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return domain.Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if err := emailCheck.Var(in.Email, "email"); err != nil {
		return domain.Validation("email is not valid")
	}
	if in.BusinessType != "" && in.BusinessType != entity.BusinessTypeRegistered && in.BusinessType != entity.BusinessTypeUnregistered {
		return domain.Validation("businessType must be registered or unregistered")
	}
	return nil
}
