package usecase

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
)

const (
	codeLength      = 8
	codeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	defaultCodeTTL  = 24 * time.Hour
	maxCodeAttempts = 5
)

// OneTimeCodeUseCase genera y lista códigos de un solo uso.
// El listado siempre se lee del repositorio, así un código recién generado aparece en la siguiente consulta.
type OneTimeCodeUseCase struct {
	repo repository.OneTimeCodeRepository
	now  func() time.Time
}

func NewOneTimeCodeUseCase(repo repository.OneTimeCodeRepository) *OneTimeCodeUseCase {
	return &OneTimeCodeUseCase{repo: repo, now: time.Now}
}

// Generate crea un código nuevo para createdBy.
func (uc *OneTimeCodeUseCase) Generate(ctx context.Context, createdBy string, in dto.GenerateCodeRequest) (*dto.OneTimeCodeResponse, error) {
	if strings.TrimSpace(in.Purpose) == "" {
		return nil, domain.Validation("purpose is required")
	}
	if in.ExpiresInHours < 0 || in.ExpiresInHours > 720 {
		return nil, domain.Validation("expiresInHours must be between 0 and 720")
	}
	ttl := defaultCodeTTL
	if in.ExpiresInHours > 0 {
		ttl = time.Duration(in.ExpiresInHours) * time.Hour
	}

	code, err := uc.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.OneTimeCode{
		ID:             uuid.New().String(),
		Code:           code,
		Purpose:        strings.TrimSpace(in.Purpose),
		OrganizationID: in.OrganizationID,
		CreatedBy:      createdBy,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, domain.Internal(err, "create one-time code")
	}
	return codeResponse(c), nil
}

// List códigos de createdBy, más recientes primero. createdBy vacío lista todos.
func (uc *OneTimeCodeUseCase) List(ctx context.Context, createdBy string) ([]dto.OneTimeCodeResponse, error) {
	list, err := uc.repo.List(ctx, createdBy)
	if err != nil {
		return nil, domain.Internal(err, "list one-time codes")
	}
	out := make([]dto.OneTimeCodeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *codeResponse(c))
	}
	return out, nil
}

func (uc *OneTimeCodeUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("id is required")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.Wrap(err, "delete one-time code")
	}
	return nil
}

func (uc *OneTimeCodeUseCase) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := randomCode()
		if err != nil {
			return "", domain.Internal(err, "generate code")
		}
		existing, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return "", domain.Internal(err, "check code")
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", domain.Conflict("could not generate a unique code, try again")
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

func codeResponse(c *entity.OneTimeCode) *dto.OneTimeCodeResponse {
	return &dto.OneTimeCodeResponse{
		ID: c.ID, Code: c.Code, Purpose: c.Purpose, OrganizationID: c.OrganizationID,
		ExpiresAt: c.ExpiresAt, UsedAt: c.UsedAt, CreatedAt: c.CreatedAt,
	}
}
