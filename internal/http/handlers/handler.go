package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"amabackend/internal/domain"
	"amabackend/internal/http/middleware"
	"amabackend/internal/query"
	"amabackend/internal/repositories"
	"amabackend/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the request-independent dependencies of the API routes.
// A nil DB falls back to the shared pool.
type Handler struct {
	DB       *sql.DB
	Dialect  query.Dialect
	PageSize uint64
	Tokens   services.Tokens
	SiteURL  string
	Mailer   services.Mailer
}

func (h Handler) amaRepo() repositories.AmaRepository {
	return repositories.AmaRepository{DB: h.DB, Dialect: h.Dialect, DefaultLimit: h.PageSize}
}

func (h Handler) userRepo() repositories.UserRepository {
	return repositories.UserRepository{DB: h.DB, Dialect: h.Dialect, DefaultLimit: h.PageSize}
}

func (h Handler) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     h.userRepo(),
		Tokens:    h.Tokens,
		Mailer:    h.Mailer,
		SiteURL:   h.SiteURL,
		RequestID: middleware.GetRequestID(c),
	}
}

func respondResult(c *gin.Context, status int, result any) {
	c.JSON(status, gin.H{"result": result})
}

// listQueryError answers a rejected list query and counts it.
func listQueryError(c *gin.Context, resource string, err error) {
	if domain.IsValidation(err) {
		middleware.QueryRejected(resource)
	}
	RespondDomainError(c, err)
}

func paramID(c *gin.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "must be a positive integer", Err: err})
		return 0, false
	}
	return int32(id), true
}

func (h Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
