package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsproxy/pkg/news"
)

// respondError maps an error from the news clients to a status code and a
// {"detail": ...} body. timeoutStatus is used for *news.TimeoutError.
func respondError(c *gin.Context, err error, timeoutStatus int) {
	var (
		upstreamErr *news.UpstreamError
		timeoutErr  *news.TimeoutError
		configErr   *news.ConfigurationError
		inputErr    *news.InvalidInputError
	)

	route := c.FullPath()

	switch {
	case errors.As(err, &inputErr):
		slog.Warn("invalid request", "route", route, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: inputErr.Error()})
	case errors.As(err, &upstreamErr):
		slog.Error("upstream error", "route", route, "status", upstreamErr.StatusCode, "error", err)
		c.JSON(upstreamErr.StatusCode, ErrorResponse{Detail: upstreamErr.Body})
	case errors.As(err, &timeoutErr):
		slog.Error("upstream timeout", "route", route, "error", err)
		c.JSON(timeoutStatus, ErrorResponse{Detail: timeoutErr.Error()})
	case errors.As(err, &configErr):
		slog.Error("configuration error", "route", route, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: configErr.Error()})
	default:
		slog.Error("request failed", "route", route, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
	}
}
