package handlers

import (
	"net/http"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	*BaseHandler
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(base *BaseHandler, recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		BaseHandler:           base,
		recommendationService: recommendationService,
	}
}

func (h *RecommendationHandler) RegisterRoutes(r *gin.RouterGroup) {
	recommendations := r.Group("/recommendations")
	{
		recommendations.GET("/jobs/:jobPositionId/applicants", h.RankApplicants)
		recommendations.GET("/candidates/:candidateProfileId/jobs", h.RecommendJobs)
	}
}

// RankApplicants godoc
// @Summary Ранжировать кандидатов по вакансии
// @Description Пересчитывает matchScore заявок; сохраняет только изменившиеся значения
// @Tags recommendations
// @Produce json
// @Param jobPositionId path string true "ID вакансии"
// @Success 200 {object} dto.RankingResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /recommendations/jobs/{jobPositionId}/applicants [get]
func (h *RecommendationHandler) RankApplicants(c *gin.Context) {
	jobPositionID, ok := h.ParamUUID(c, "jobPositionId")
	if !ok {
		return
	}

	ranking, err := h.recommendationService.RankApplicantsForJob(c.Request.Context(), h.GetDB(c), jobPositionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// RecommendJobs godoc
// @Summary Подобрать вакансии кандидату
// @Tags recommendations
// @Produce json
// @Param candidateProfileId path string true "ID кандидата"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /recommendations/candidates/{candidateProfileId}/jobs [get]
func (h *RecommendationHandler) RecommendJobs(c *gin.Context) {
	candidateID, ok := h.ParamUUID(c, "candidateProfileId")
	if !ok {
		return
	}

	recommendations, err := h.recommendationService.RecommendJobsForCandidate(c.Request.Context(), h.GetDB(c), candidateID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendations)
}
