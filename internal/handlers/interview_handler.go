package handlers

import (
	"net/http"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	*BaseHandler
	interviewService services.InterviewService
}

func NewInterviewHandler(base *BaseHandler, interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      base,
		interviewService: interviewService,
	}
}

func (h *InterviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	interviews := r.Group("/interviews")
	{
		interviews.POST("", h.ScheduleInterview)
		interviews.GET("", h.ListInterviews)
		interviews.GET("/:id", h.GetInterview)
		interviews.PATCH("/:id", h.UpdateInterview)
		interviews.DELETE("/:id", h.DeleteInterview)
		interviews.PUT("/:id/restore", h.RestoreInterview)
		interviews.DELETE("/:id/hard-delete", h.HardDeleteInterview)
	}
}

// ScheduleInterview godoc
// @Summary Назначить интервью
// @Description Интервьюерам с email уходит приглашение; сбой почты не отменяет интервью
// @Tags interviews
// @Accept json
// @Produce json
// @Param interview body dto.ScheduleInterviewRequest true "Интервью"
// @Success 201 {object} models.Interview
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /interviews [post]
func (h *InterviewHandler) ScheduleInterview(c *gin.Context) {
	var req dto.ScheduleInterviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.ScheduleInterview(c.Request.Context(), h.GetDB(c), h.ActorID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interview)
}

// ListInterviews godoc
// @Summary Список интервью
// @Tags interviews
// @Produce json
// @Param applicationId query string false "ID заявки"
// @Param jobPositionId query string false "ID вакансии"
// @Param status query string false "Статус"
// @Param type query string false "Тип"
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Success 200 {object} dto.PaginatedResponse[models.Interview]
// @Router /interviews [get]
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	var query dto.InterviewListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.interviewService.ListInterviews(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetInterview godoc
// @Summary Получить интервью
// @Tags interviews
// @Produce json
// @Param id path string true "ID интервью"
// @Success 200 {object} models.Interview
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	interview, err := h.interviewService.GetInterview(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

// UpdateInterview godoc
// @Summary Обновить интервью
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "ID интервью"
// @Param interview body dto.UpdateInterviewRequest true "Изменяемые поля"
// @Success 200 {object} models.Interview
// @Router /interviews/{id} [patch]
func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateInterviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.interviewService.UpdateInterview(c.Request.Context(), h.GetDB(c), h.ActorID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

// DeleteInterview godoc
// @Summary Отменить интервью (мягкое удаление)
// @Tags interviews
// @Param id path string true "ID интервью"
// @Success 200 {object} map[string]string
// @Router /interviews/{id} [delete]
func (h *InterviewHandler) DeleteInterview(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.interviewService.DeleteInterview(c.Request.Context(), h.GetDB(c), h.ActorID(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interview cancelled successfully"})
}

// RestoreInterview godoc
// @Summary Восстановить интервью
// @Tags interviews
// @Produce json
// @Param id path string true "ID интервью"
// @Success 200 {object} models.Interview
// @Router /interviews/{id}/restore [put]
func (h *InterviewHandler) RestoreInterview(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	interview, err := h.interviewService.RestoreInterview(c.Request.Context(), h.GetDB(c), h.ActorID(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

// HardDeleteInterview godoc
// @Summary Удалить интервью без возможности восстановления
// @Tags interviews
// @Param id path string true "ID интервью"
// @Success 200 {object} map[string]string
// @Router /interviews/{id}/hard-delete [delete]
func (h *InterviewHandler) HardDeleteInterview(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.interviewService.HardDeleteInterview(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Interview permanently deleted"})
}
