package handlers

import (
	"net/http"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CandidateProfileHandler struct {
	*BaseHandler
	candidateService services.CandidateProfileService
}

func NewCandidateProfileHandler(base *BaseHandler, candidateService services.CandidateProfileService) *CandidateProfileHandler {
	return &CandidateProfileHandler{
		BaseHandler:      base,
		candidateService: candidateService,
	}
}

func (h *CandidateProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	candidates := r.Group("/candidate-profiles")
	{
		candidates.POST("", h.CreateCandidateProfile)
		candidates.GET("", h.ListCandidateProfiles)
		candidates.GET("/:id", h.GetCandidateProfile)
		candidates.PUT("/:id", h.UpdateCandidateProfile)
		candidates.DELETE("/:id", h.DeleteCandidateProfile)
	}
}

// CreateCandidateProfile godoc
// @Summary Создать профиль кандидата
// @Tags candidate-profiles
// @Accept json
// @Produce json
// @Param candidate body dto.CandidateDetails true "Данные кандидата"
// @Success 201 {object} models.CandidateProfile
// @Failure 409 {object} apperrors.ErrorResponse "Email или телефон уже заняты"
// @Router /candidate-profiles [post]
func (h *CandidateProfileHandler) CreateCandidateProfile(c *gin.Context) {
	var req dto.CandidateDetails
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	candidate, err := h.candidateService.CreateCandidateProfile(c.Request.Context(), h.GetDB(c), h.ActorID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// ListCandidateProfiles godoc
// @Summary Список кандидатов
// @Tags candidate-profiles
// @Produce json
// @Param search query string false "Имя или email"
// @Param location query string false "Локация"
// @Param skill query string false "Навык"
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Success 200 {object} dto.PaginatedResponse[models.CandidateProfile]
// @Router /candidate-profiles [get]
func (h *CandidateProfileHandler) ListCandidateProfiles(c *gin.Context) {
	var query dto.CandidateProfileListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.candidateService.ListCandidateProfiles(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetCandidateProfile godoc
// @Summary Получить профиль кандидата
// @Tags candidate-profiles
// @Produce json
// @Param id path string true "ID кандидата"
// @Success 200 {object} models.CandidateProfile
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /candidate-profiles/{id} [get]
func (h *CandidateProfileHandler) GetCandidateProfile(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	candidate, err := h.candidateService.GetCandidateProfile(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// UpdateCandidateProfile godoc
// @Summary Обновить профиль кандидата
// @Tags candidate-profiles
// @Accept json
// @Produce json
// @Param id path string true "ID кандидата"
// @Param candidate body dto.UpdateCandidateProfileRequest true "Изменяемые поля"
// @Success 200 {object} models.CandidateProfile
// @Router /candidate-profiles/{id} [put]
func (h *CandidateProfileHandler) UpdateCandidateProfile(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCandidateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	candidate, err := h.candidateService.UpdateCandidateProfile(c.Request.Context(), h.GetDB(c), h.ActorID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// DeleteCandidateProfile godoc
// @Summary Мягко удалить профиль кандидата
// @Tags candidate-profiles
// @Param id path string true "ID кандидата"
// @Success 200 {object} map[string]string
// @Router /candidate-profiles/{id} [delete]
func (h *CandidateProfileHandler) DeleteCandidateProfile(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.candidateService.DeleteCandidateProfile(c.Request.Context(), h.GetDB(c), h.ActorID(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate profile deleted successfully"})
}
