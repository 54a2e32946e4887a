package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/repository"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

// MsgInvalidCredentials respuesta de login para un email desconocido.
const MsgInvalidCredentials = "Invalid credentials"

var staffTokenPattern = regexp.MustCompile(`^mock_token_(\w+)_(\d+)$`)

// StaffAuthUseCase login simulado de agentes de campo.
// Acepta cualquier contraseña no vacía para un email conocido y emite mock_token_{id}_{unixMillis}.
type StaffAuthUseCase struct {
	staffRepo repository.StaffRepository
	sessions  *AuthSession
	now       func() time.Time
	log       *logger.Logger
}

// NewStaffAuthUseCase construye el caso de uso. sessions puede ser nil: el token se valida solo por formato.
func NewStaffAuthUseCase(staffRepo repository.StaffRepository, sessions *AuthSession, log *logger.Logger) *StaffAuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StaffAuthUseCase{staffRepo: staffRepo, sessions: sessions, now: time.Now, log: log.Named("staff_auth")}
}

// Login valida email/password y retorna token + usuario.
func (uc *StaffAuthUseCase) Login(ctx context.Context, in dto.StaffLoginRequest) (*dto.StaffLoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Validation("email and password are required")
	}
	user, err := uc.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internal(err, "load staff user")
	}
	if user == nil {
		uc.log.Info().Str("email", email).Msg("login rechazado")
		return nil, domain.Unauthorized(MsgInvalidCredentials)
	}
	if user.Status != "" && user.Status != "active" {
		return nil, domain.Forbidden("user is not active")
	}

	now := uc.now()
	token := fmt.Sprintf("mock_token_%s_%d", user.ID, now.UnixMilli())
	if uc.sessions != nil {
		if err := uc.sessions.Persist(ctx, Session{Token: token, UserID: user.ID, Role: user.Role, IssuedAt: now}); err != nil {
			return nil, domain.Internal(err, "persist session")
		}
	}
	uc.log.Info().Str("user_id", user.ID).Msg("login de staff")
	return &dto.StaffLoginResponse{Success: true, Token: token, User: dto.FromStaff(user)}, nil
}

// Authenticate resuelve el usuario de un header Authorization (o token suelto).
func (uc *StaffAuthUseCase) Authenticate(ctx context.Context, header string) (*entity.StaffUser, error) {
	token := TokenFromHeader(header)
	if token == "" {
		return nil, domain.Unauthorized("No token provided")
	}
	m := staffTokenPattern.FindStringSubmatch(token)
	if m == nil {
		return nil, domain.Unauthorized("Invalid token")
	}
	userID := m[1]
	if uc.sessions != nil {
		s, err := uc.sessions.Restore(ctx, token)
		if err != nil {
			return nil, domain.Internal(err, "restore session")
		}
		if s == nil || s.UserID != userID {
			return nil, domain.Unauthorized("Session expired")
		}
	}
	user, err := uc.staffRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, "load staff user")
	}
	if user == nil {
		return nil, domain.Unauthorized("Invalid token")
	}
	return user, nil
}

// Verify responde si el token sigue siendo válido.
func (uc *StaffAuthUseCase) Verify(ctx context.Context, header string) (*dto.StaffVerifyResponse, error) {
	user, err := uc.Authenticate(ctx, header)
	if err != nil {
		return nil, err
	}
	return &dto.StaffVerifyResponse{Success: true, Valid: true, User: dto.FromStaff(user)}, nil
}

// Logout descarta la sesión; sin store no hay nada que borrar.
func (uc *StaffAuthUseCase) Logout(ctx context.Context, header string) error {
	token := TokenFromHeader(header)
	if token == "" || uc.sessions == nil {
		return nil
	}
	if err := uc.sessions.Clear(ctx, token); err != nil {
		return domain.Internal(err, "clear session")
	}
	return nil
}
