package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"carenote/internal/domain"
	"carenote/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	memos     service.MemoService
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, memos service.MemoService, jwtSecret string, tokenTTL time.Duration, logger *logrus.Logger) *Handler {
	return &Handler{
		users:     users,
		memos:     memos,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.requestLogger())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
		}

		authed := api.Group("")
		authed.Use(h.requireAuth())
		{
			authed.GET("/profile", h.getProfile)
			authed.PATCH("/profile", h.updateProfile)
			authed.PUT("/profile/password", h.changePassword)
			authed.DELETE("/profile", h.deleteAccount)

			authed.GET("/memo", h.listMemos)
			authed.POST("/memo", h.createMemo)
			authed.GET("/memo/:id", h.getMemo)
			authed.PUT("/memo/:id", h.updateMemo)
			authed.DELETE("/memo/:id", h.deleteMemo)
		}
	}
}

// respondError translates service errors to HTTP responses. Ownership and
// missing-record failures carry no detail beyond the status.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
	case errors.Is(err, service.ErrMemoNotFound), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	default:
		h.logger.WithField("request_id", requestID(c)).Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type MemoResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func memoToResponse(memo domain.Memo) MemoResponse {
	return MemoResponse{
		ID:        memo.ID,
		UserID:    memo.UserID,
		Title:     memo.Title,
		Content:   memo.Content,
		CreatedAt: memo.CreatedAt.Format(time.RFC3339),
		UpdatedAt: memo.UpdatedAt.Format(time.RFC3339),
	}
}
