package main

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/dto"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/memory"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory_AgentePrecargado(t *testing.T) {
	st := openMemory()
	defer st.close()
	ctx := context.Background()

	uc := auth.NewStaffAuthUseCase(st.staff, auth.NewAuthSession(memory.NewSessionStore(), time.Hour), logger.Nop())
	out, err := uc.Login(ctx, dto.StaffLoginRequest{Email: "agent@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^mock_token_1_\d+$`), out.Token)

	user, err := uc.Authenticate(ctx, "Bearer "+out.Token)
	require.NoError(t, err)
	assert.True(t, user.Has(entity.PermDataVerification))
}
