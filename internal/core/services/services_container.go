package services

import (
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Auth:       NewAuthService(repos.UserRepo, cfg.SessionCookieName, options...),
		User:       NewUserService(repos.UserRepo, options...),
		Medication: NewMedicationService(repos.UserRepo, options...),
	}
}
