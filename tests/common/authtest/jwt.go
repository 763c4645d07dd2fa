//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"roomboard/internal/domain/user"
	"roomboard/internal/pkg/config"
	"roomboard/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, p user.Principal) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(p)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, p user.Principal) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(p)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

func UserPrincipal() user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleUser}
}

func OrgAdminPrincipal(orgID uuid.UUID) user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleOrgAdmin, OrganizationID: &orgID}
}

func SystemAdminPrincipal() user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleSystemAdmin}
}
