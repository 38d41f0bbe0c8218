package handlers

import (
	"net/http"

	"amabackend/internal/domain"
	"amabackend/internal/domain/models"
	"amabackend/internal/http/middleware"
	"amabackend/internal/query"
	"amabackend/internal/services"
	"amabackend/internal/utils"

	"github.com/gin-gonic/gin"
)

const amaResource = "ama"

// POST /api/ama
func (h Handler) CreateAma(c *gin.Context) {
	var req models.Ama
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.amaRepo().Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), amaResource, "create", "ama created", "id", created.ID)
	respondResult(c, http.StatusCreated, created)
}

// GET /api/ama
func (h Handler) ListAma(c *gin.Context) {
	p, err := query.ParseValues[models.AmaFilter, models.AmaOrder](c.Request.URL.Query())
	if err != nil {
		listQueryError(c, amaResource, err)
		return
	}
	h.findAma(c, p)
}

// POST /api/ama/search
func (h Handler) SearchAma(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "body", Msg: "unreadable request body", Err: err})
		return
	}
	p, err := query.ParseJSON[models.AmaFilter, models.AmaOrder](body)
	if err != nil {
		listQueryError(c, amaResource, err)
		return
	}
	h.findAma(c, p)
}

func (h Handler) findAma(c *gin.Context, p *models.AmaParams) {
	list, err := h.amaRepo().Find(c.Request.Context(), p)
	if err != nil {
		listQueryError(c, amaResource, err)
		return
	}
	respondResult(c, http.StatusOK, list)
}

// GET /api/ama/export
func (h Handler) ExportAma(c *gin.Context) {
	p, err := query.ParseValues[models.AmaFilter, models.AmaOrder](c.Request.URL.Query())
	if err != nil {
		listQueryError(c, amaResource, err)
		return
	}
	svc := services.ExportService{AmaRepo: h.amaRepo(), RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.ExportAma(c.Request.Context(), p)
	if err != nil {
		listQueryError(c, amaResource, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/ama/:id
func (h Handler) GetAma(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := h.amaRepo().FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondResult(c, http.StatusOK, a)
}

// PUT /api/ama/:id
func (h Handler) UpdateAma(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req models.Ama
	if !bindJSON(c, &req) {
		return
	}
	if err := h.amaRepo().Update(c.Request.Context(), id, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), amaResource, "update", "ama updated", "id", id)
	respondResult(c, http.StatusOK, "Ok")
}

// DELETE /api/ama/:id
func (h Handler) DeleteAma(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.amaRepo().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), amaResource, "delete", "ama deleted", "id", id)
	respondResult(c, http.StatusOK, "Ok")
}
