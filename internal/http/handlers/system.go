package handlers

import (
	"context"
	"net/http"
	"time"

	intconfig "amabackend/internal/config"
	"amabackend/internal/db"

	"github.com/gin-gonic/gin"
)

func (h Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DBCheck pings the pool and reports tables the API depends on that are
// missing from the schema.
func (h Handler) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	pool := h.DB
	if pool == nil {
		pool = intconfig.DB
	}
	if pool == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database is not connected")
		return
	}
	if err := pool.PingContext(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database is not reachable")
		return
	}
	missing, err := db.MissingTables(ctx, pool, h.Dialect, "ama", "users")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	status := "ok"
	if len(missing) > 0 {
		status = "migrations pending"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "driver": h.Dialect.String(), "missing_tables": missing})
}
