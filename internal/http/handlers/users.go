package handlers

import (
	"net/http"

	"amabackend/internal/domain/models"
	"amabackend/internal/query"

	"github.com/gin-gonic/gin"
)

// GET /api/users
func (h Handler) ListUsers(c *gin.Context) {
	p, err := query.ParseValues[models.UserFilter, models.UserOrder](c.Request.URL.Query())
	if err != nil {
		listQueryError(c, "users", err)
		return
	}
	list, err := h.userRepo().Find(c.Request.Context(), p)
	if err != nil {
		listQueryError(c, "users", err)
		return
	}
	respondResult(c, http.StatusOK, list)
}
