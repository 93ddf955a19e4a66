package services

import (
	"context"
	"fmt"

	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// staticDataService seeds reference rows at startup: the reserved journal
// list and the known configuration parameters.
type staticDataService struct {
	journalRepo portsrepo.JournalRepository
	paramRepo   portsrepo.ParameterRepository
}

// NewStaticDataService creates a new StaticDataService.
func NewStaticDataService(journalRepo portsrepo.JournalRepository, paramRepo portsrepo.ParameterRepository) portssvc.StaticDataService {
	return &staticDataService{
		journalRepo: journalRepo,
		paramRepo:   paramRepo,
	}
}

var _ portssvc.StaticDataService = (*staticDataService)(nil)

// InitializeStaticData is idempotent and safe to run on every startup.
func (s *staticDataService) InitializeStaticData(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.journalRepo.EnsureDefaultJournals(ctx); err != nil {
		return fmt.Errorf("failed to seed default journals: %w", err)
	}
	if err := s.paramRepo.EnsureDefaultParameters(ctx); err != nil {
		return fmt.Errorf("failed to seed default parameters: %w", err)
	}

	logger.Info("Static data initialized")
	return nil
}
