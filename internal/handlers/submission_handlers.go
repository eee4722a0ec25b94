package handlers

import (
	"errors"
	"net/http"

	"toolnav/internal/caching"
	"toolnav/internal/common"
	"toolnav/internal/middleware"
	"toolnav/internal/models"
	"toolnav/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SubmissionObserver counts submission outcomes
type SubmissionObserver interface {
	ObserveSubmission(outcome string)
}

type SubmissionHandlers struct {
	submissionService services.SubmissionService
	limiter           caching.RateLimiter
	observer          SubmissionObserver
	logger            *zap.Logger
}

func NewSubmissionHandlers(submissionService services.SubmissionService, limiter caching.RateLimiter, observer SubmissionObserver, logger *zap.Logger) *SubmissionHandlers {
	return &SubmissionHandlers{
		submissionService: submissionService,
		limiter:           limiter,
		observer:          observer,
		logger:            logger,
	}
}

// SubmitTool handles POST /api/tools/submit
func (h *SubmissionHandlers) SubmitTool(c echo.Context) error {
	ctx := c.Request().Context()

	allowed, err := h.limiter.Allow(ctx, c.RealIP())
	if err != nil {
		h.logger.Warn("submission rate limit check failed", zap.Error(err))
	}
	if !allowed {
		h.observer.ObserveSubmission(middleware.SubmissionRateLimited)
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many submissions, please try again later")
	}

	var req models.SubmissionRequest
	if err := c.Bind(&req); err != nil {
		h.observer.ObserveSubmission(middleware.SubmissionRejected)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid submission payload")
	}

	result, err := h.submissionService.Submit(ctx, &req)
	if err != nil {
		var fieldErr *services.FieldError
		if errors.As(err, &fieldErr) {
			h.observer.ObserveSubmission(middleware.SubmissionRejected)
			return common.ValidationError(fieldErr.Field, fieldErr.Reason)
		}
		h.observer.ObserveSubmission(middleware.SubmissionFailed)
		return common.ServerError("Submission", err)
	}

	h.observer.ObserveSubmission(middleware.SubmissionAccepted)
	return c.JSON(http.StatusCreated, result)
}
