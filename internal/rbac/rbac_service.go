package rbac

import (
	"strings"
	"sync"

	"go-volunteer/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const roleOrganizer = "organizer"

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	// IsOrganizer reports whether actor created the event or holds a privileged role.
	IsOrganizer(actor domain.Actor, eventCreatedBy uuid.UUID) bool
	IsPrivileged(role string) bool
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService seeds the enforcer with the organizer permission set and maps
// every privileged role onto it.
func NewService(enforcer *casbin.Enforcer, privilegedRoles []string, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	rules := [][]string{
		{roleOrganizer, domain.ResourceEvent, domain.ActionOrganize},
		{roleOrganizer, domain.ResourceMaintenance, domain.ActionRun},
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, err
	}
	for _, role := range privilegedRoles {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		if _, err := enforcer.AddGroupingPolicy(role, roleOrganizer); err != nil {
			return nil, err
		}
	}
	l.Info("rbac policy loaded", zap.Strings("privileged_roles", privilegedRoles))

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		return false, nil
	}
	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}
	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) IsPrivileged(role string) bool {
	allowed, err := s.Enforce(domain.EnforceRequest{
		Role:     role,
		Resource: domain.ResourceEvent,
		Action:   domain.ActionOrganize,
	})
	return err == nil && allowed
}

func (s *service) IsOrganizer(actor domain.Actor, eventCreatedBy uuid.UUID) bool {
	if actor.UserID != "" && eventCreatedBy != uuid.Nil && actor.UserID == eventCreatedBy.String() {
		return true
	}
	return s.IsPrivileged(actor.Role)
}
