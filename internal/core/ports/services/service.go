package services

// ServiceContainer holds all service interfaces for dependency injection
// into the handlers.
type ServiceContainer struct {
	Recon      ReconSvcFacade
	Suggestion SuggestionSvcFacade
	Mapping    MappingSvcFacade
	Directory  DirectorySvcFacade
	Learning   LearningSvcFacade
}
