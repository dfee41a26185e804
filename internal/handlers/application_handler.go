package handlers

import (
	"net/http"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const resumeFormField = "file"

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	{
		applications.POST("", h.CreateApplication)
		applications.POST("/resumes", h.UploadResume)
		applications.GET("", h.ListApplications)
		applications.GET("/:id", h.GetApplication)
		applications.PATCH("/:id", h.UpdateApplication)
		applications.DELETE("/:id", h.DeleteApplication)
		applications.PUT("/:id/restore", h.RestoreApplication)
	}
}

// CreateApplication godoc
// @Summary Подать заявку
// @Description Находит или создает кандидата по email, обогащает резюме и считает matchScore
// @Tags applications
// @Accept json
// @Produce json
// @Param application body dto.CreateApplicationRequest true "Заявка"
// @Success 201 {object} models.Application
// @Failure 400 {object} apperrors.ErrorResponse "Вакансия закрыта или неверные данные"
// @Failure 404 {object} apperrors.ErrorResponse "Вакансия не найдена"
// @Failure 409 {object} apperrors.ErrorResponse "Кандидат уже подал заявку"
// @Router /applications [post]
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.CreateApplication(c.Request.Context(), h.GetDB(c), h.ActorID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// UploadResume godoc
// @Summary Загрузить файл резюме
// @Description Возвращает resumePath для последующего создания заявки
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF, DOCX, TXT или MD"
// @Success 201 {object} dto.ResumeUploadResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /applications/resumes [post]
func (h *ApplicationHandler) UploadResume(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile(resumeFormField)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("no file provided"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.CtxWithError(ctx, "Failed to open uploaded resume", err, "filename", fileHeader.Filename)
		apperrors.HandleError(c, apperrors.NewBadRequestError("cannot read uploaded file"))
		return
	}
	defer file.Close()

	resp, err := h.applicationService.UploadResume(ctx, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListApplications godoc
// @Summary Список заявок
// @Tags applications
// @Produce json
// @Param status query string false "Статус"
// @Param jobPositionId query string false "ID вакансии"
// @Param candidateProfileId query string false "ID кандидата"
// @Param source query string false "Источник"
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Param sortBy query string false "Поле сортировки" default(createdAt)
// @Param sortOrder query string false "asc или desc" default(desc)
// @Success 200 {object} dto.PaginatedResponse[models.Application]
// @Router /applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var query dto.ApplicationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.applicationService.ListApplications(c.Request.Context(), h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetApplication godoc
// @Summary Получить заявку
// @Tags applications
// @Produce json
// @Param id path string true "ID заявки"
// @Success 200 {object} models.Application
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{id} [get]
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.applicationService.GetApplication(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateApplication godoc
// @Summary Обновить заявку или сменить статус
// @Description HIRED и REJECTED финальны; для REJECTED обязателен rejectionReason
// @Tags applications
// @Accept json
// @Produce json
// @Param id path string true "ID заявки"
// @Param application body dto.UpdateApplicationRequest true "Изменяемые поля"
// @Success 200 {object} models.Application
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /applications/{id} [patch]
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateApplication(c.Request.Context(), h.GetDB(c), h.ActorID(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// DeleteApplication godoc
// @Summary Мягко удалить заявку
// @Tags applications
// @Param id path string true "ID заявки"
// @Success 200 {object} map[string]string
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.applicationService.DeleteApplication(c.Request.Context(), h.GetDB(c), h.ActorID(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// RestoreApplication godoc
// @Summary Восстановить заявку
// @Tags applications
// @Produce json
// @Param id path string true "ID заявки"
// @Success 200 {object} models.Application
// @Failure 409 {object} apperrors.ErrorResponse "У кандидата уже есть активная заявка"
// @Router /applications/{id}/restore [put]
func (h *ApplicationHandler) RestoreApplication(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}

	app, err := h.applicationService.RestoreApplication(c.Request.Context(), h.GetDB(c), h.ActorID(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
