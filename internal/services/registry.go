package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	JobPositionService      JobPositionService
	CandidateProfileService CandidateProfileService
	ApplicationService      ApplicationService
	InterviewService        InterviewService
	RecommendationService   RecommendationService
	ReportService           ReportService
}
