package services

import (
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Resolution pipeline first; the recon service depends on learning.
	container.Mapping = NewMappingService(repos.MappingRepo)
	container.Directory = NewDirectoryService(repos.DirectoryRepo, cfg.DirectoryCacheTTL)
	container.Learning = NewLearningService(repos.MappingRepo)
	container.Suggestion = NewSuggestionService(container.Mapping, container.Directory, cfg.SuggestionMaxResults)

	container.Recon = NewReconService(
		repos.TransactionRepo,
		WithLearningService(container.Learning),
		WithReferenceQuietPeriod(cfg.ReferenceFlushQuietPeriod),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MappingSvcFacade    = (*mappingService)(nil)
	_ portssvc.DirectorySvcFacade  = (*directoryService)(nil)
	_ portssvc.LearningSvcFacade   = (*learningService)(nil)
	_ portssvc.SuggestionSvcFacade = (*suggestionService)(nil)
)
