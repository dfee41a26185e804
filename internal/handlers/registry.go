package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler           *HealthHandler
	JobPositionHandler      *JobPositionHandler
	CandidateProfileHandler *CandidateProfileHandler
	ApplicationHandler      *ApplicationHandler
	InterviewHandler        *InterviewHandler
	RecommendationHandler   *RecommendationHandler
	ReportHandler           *ReportHandler
}
