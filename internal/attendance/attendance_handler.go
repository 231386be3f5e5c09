package attendance

import (
	"net/http"
	"strconv"
	"time"

	"go-volunteer/internal/middleware"
	"go-volunteer/internal/shared/apperror"
	"go-volunteer/internal/shared/contextutil"
	"go-volunteer/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

// NewHandler wires the attendance endpoints. rdb may be nil, in which case
// scan responses are not cached for idempotent replay.
func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) IssueToken(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	eventID := c.Param("eventId")
	h.logger.Debug("http issue attendance token", zap.String("event_id", eventID), zap.String("actor_id", actor.UserID))

	issued, err := h.service.IssueToken(c.Request.Context(), actor, eventID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token":     issued.Token,
		"tokenId":   issued.TokenID,
		"eventId":   issued.EventID,
		"expiresAt": issued.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil)
}

func (h *Handler) Scan(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http scan validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RedeemQR(c.Request.Context(), actor, req.QRData, req.Action)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.StoreIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RedeemToken(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	var req TokenRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http token redeem validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RedeemToken(c.Request.Context(), actor, req.Token, req.Action)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.StoreIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	resp, err := h.service.GetMyAttendance(c.Request.Context(), actor, c.Param("eventId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) PendingFeedback(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	resp, err := h.service.GetPendingFeedback(c.Request.Context(), actor.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ValidateOpenSessions(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	validate := h.service.ValidateOpenSessions
	if dryRun, _ := strconv.ParseBool(c.Query("dryRun")); dryRun {
		validate = h.service.PreviewOpenSessions
	}

	resp, err := validate(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
