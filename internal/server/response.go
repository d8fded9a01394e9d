package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"briefy/internal/export"
	"briefy/internal/llm/client"
	"briefy/internal/llm/interpret"
	"briefy/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{services.ErrProjectNotFound, http.StatusNotFound, "not_found"},
	{gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},

	{services.ErrInvalidInput, http.StatusBadRequest, "invalid_request"},
	{services.ErrInvalidContentType, http.StatusBadRequest, "invalid_content_type"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{services.ErrInvalidPriority, http.StatusBadRequest, "invalid_priority"},
	{services.ErrInvalidFlowchart, http.StatusBadRequest, "invalid_flowchart"},
	{services.ErrNothingToAnalyze, http.StatusBadRequest, "nothing_to_analyze"},
	{export.ErrNoFlowchart, http.StatusBadRequest, "no_flowchart"},

	{client.ErrMissingCredential, http.StatusServiceUnavailable, "ai_not_configured"},
	{client.ErrMalformedCredential, http.StatusServiceUnavailable, "ai_not_configured"},
	{client.ErrKeyProblem, http.StatusBadGateway, "ai_key"},
	{client.ErrQuotaProblem, http.StatusTooManyRequests, "ai_quota"},
	{client.ErrNetworkProblem, http.StatusGatewayTimeout, "ai_network"},
	{interpret.ErrNoJSON, http.StatusBadGateway, "ai_bad_reply"},
	{interpret.ErrMalformedJSON, http.StatusBadGateway, "ai_bad_reply"},
	{interpret.ErrUnsupportedType, http.StatusBadRequest, "invalid_content_type"},
	{client.ErrGenerationFailed, http.StatusBadGateway, "ai_failed"},
}

// RespondServiceError maps a service error onto the matching status code.
func RespondServiceError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			RespondError(c, m.status, m.code, err)
			return
		}
	}
	RespondError(c, http.StatusInternalServerError, "internal", err)
}
