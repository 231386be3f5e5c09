package rbac

import (
	"testing"

	"go-volunteer/internal/domain"
	"go-volunteer/internal/rbac/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := NewService(e, []string{"admin", " STAFF "}, zap.NewNop())
	assert.NoError(t, err)
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(domain.EnforceRequest{Role: "ADMIN", Resource: domain.ResourceEvent, Action: domain.ActionOrganize})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Role: "staff", Resource: domain.ResourceMaintenance, Action: domain.ActionRun})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Role: "VOLUNTEER", Resource: domain.ResourceEvent, Action: domain.ActionOrganize})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Role: "", Resource: domain.ResourceEvent, Action: domain.ActionOrganize})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestService_IsOrganizer(t *testing.T) {
	svc := newTestService(t)
	creator := uuid.New()

	t.Run("event creator", func(t *testing.T) {
		assert.True(t, svc.IsOrganizer(domain.NewActor(creator.String(), "VOLUNTEER"), creator))
	})
	t.Run("privileged role", func(t *testing.T) {
		assert.True(t, svc.IsOrganizer(domain.NewActor(uuid.NewString(), "admin"), creator))
	})
	t.Run("plain volunteer", func(t *testing.T) {
		assert.False(t, svc.IsOrganizer(domain.NewActor(uuid.NewString(), "VOLUNTEER"), creator))
	})
	t.Run("empty actor never matches nil creator", func(t *testing.T) {
		assert.False(t, svc.IsOrganizer(domain.Actor{}, uuid.Nil))
	})
}
