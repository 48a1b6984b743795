package service

import (
	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

// DashboardService interface defines dashboard operations
type DashboardService interface {
	GetStatistics(actor authz.Actor, rtNumber, rwNumber string) (*repository.DashboardStatistics, error)
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	logger        *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// GetStatistics returns aggregate counts for the actor's scope. RT is pinned
// to its own territorial pair, RW to its own RW; ADMIN picks freely.
func (s *dashboardService) GetStatistics(actor authz.Actor, rtNumber, rwNumber string) (*repository.DashboardStatistics, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	switch actor.Role {
	case models.RoleRT:
		if actor.Territory == nil {
			return nil, apperr.New(apperr.KindForbidden, "RT account has no territory assignment")
		}
		rtNumber = actor.Territory.RTNumber
		rwNumber = actor.Territory.RWNumber
	case models.RoleRW:
		if actor.Territory != nil {
			rwNumber = actor.Territory.RWNumber
		}
	}

	return s.dashboardRepo.GetStatistics(rtNumber, rwNumber)
}
