package handlers

import (
	"net/http"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobPositionHandler struct {
	*BaseHandler
	jobPositionService services.JobPositionService
}

func NewJobPositionHandler(base *BaseHandler, jobPositionService services.JobPositionService) *JobPositionHandler {
	return &JobPositionHandler{
		BaseHandler:        base,
		jobPositionService: jobPositionService,
	}
}

func (h *JobPositionHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/job-positions")
	{
		jobs.POST("", h.CreateJobPosition)
		jobs.GET("", h.ListJobPositions)
		jobs.GET("/:id", h.GetJobPosition)
		jobs.PUT("/:id", h.UpdateJobPosition)
		jobs.DELETE("/:id", h.DeleteJobPosition)
		jobs.PUT("/:id/restore", h.RestoreJobPosition)
		jobs.DELETE("/:id/hard-delete", h.HardDeleteJobPosition)
	}
}

// CreateJobPosition godoc
// @Summary Создать вакансию
// @Tags job-positions
// @Accept json
// @Produce json
// @Param job body dto.CreateJobPositionRequest true "Данные вакансии"
// @Success 201 {object} models.JobPosition
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /job-positions [post]
func (h *JobPositionHandler) CreateJobPosition(c *gin.Context) {
	var req dto.CreateJobPositionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobPositionService.CreateJobPosition(c.Request.Context(), h.GetDB(c), h.ActorID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ListJobPositions godoc
// @Summary Список вакансий
// @Tags job-positions
// @Produce json
// @Param status query string false "Статус"
// @Param department query string false "Отдел"
// @Param jobType query string false "Тип занятости"
// @Param experienceLevel query string false "Уровень"
// @Param search query string false "Поиск по названию и описанию"
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Param sortBy query string false "Поле сортировки" default(createdAt)
// @Param sortOrder query string false "asc или desc" default(desc)
// @Success 200 {object} dto.PaginatedResponse[models.JobPosition]
// @Router /job-positions [get]
func (h *JobPositionHandler) ListJobPositions(c *gin.Context) {
	var query dto.JobPositionListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.jobPositionService.ListJobPositions(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetJobPosition godoc
// @Summary Получить вакансию
// @Tags job-positions
// @Produce json
// @Param id path string true "ID вакансии"
// @Success 200 {object} models.JobPosition
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /job-positions/{id} [get]
func (h *JobPositionHandler) GetJobPosition(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobPositionService.GetJobPosition(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJobPosition godoc
// @Summary Обновить вакансию
// @Tags job-positions
// @Accept json
// @Produce json
// @Param id path string true "ID вакансии"
// @Param job body dto.UpdateJobPositionRequest true "Изменяемые поля"
// @Success 200 {object} models.JobPosition
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /job-positions/{id} [put]
func (h *JobPositionHandler) UpdateJobPosition(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateJobPositionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobPositionService.UpdateJobPosition(c.Request.Context(), h.GetDB(c), h.ActorID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJobPosition godoc
// @Summary Мягко удалить вакансию
// @Tags job-positions
// @Param id path string true "ID вакансии"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /job-positions/{id} [delete]
func (h *JobPositionHandler) DeleteJobPosition(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.jobPositionService.DeleteJobPosition(c.Request.Context(), h.GetDB(c), h.ActorID(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job position deleted successfully"})
}

// RestoreJobPosition godoc
// @Summary Восстановить вакансию
// @Tags job-positions
// @Produce json
// @Param id path string true "ID вакансии"
// @Success 200 {object} models.JobPosition
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /job-positions/{id}/restore [put]
func (h *JobPositionHandler) RestoreJobPosition(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobPositionService.RestoreJobPosition(c.Request.Context(), h.GetDB(c), h.ActorID(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// HardDeleteJobPosition godoc
// @Summary Удалить вакансию без возможности восстановления
// @Tags job-positions
// @Param id path string true "ID вакансии"
// @Success 200 {object} map[string]string
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "На вакансию ссылаются заявки"
// @Router /job-positions/{id}/hard-delete [delete]
func (h *JobPositionHandler) HardDeleteJobPosition(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.jobPositionService.HardDeleteJobPosition(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job position permanently deleted"})
}
