package errors

import (
	"github.com/gin-gonic/gin"
)

type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// ErrorResponse is the JSON body written for failed requests. Detail keeps
// the shape browser clients already read.
type ErrorResponse struct {
	Detail string         `json:"detail"`
	Error  *StandardError `json:"error"`
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond normalizes err, logs it and aborts the request with the mapped
// status.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	stdErr := AsStandardError(err)
	status := HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"method":        c.Request.Method,
		"path":          c.FullPath(),
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if status >= 500 {
		h.logger.Error("request failed", fields)
	} else {
		h.logger.Warn("request rejected", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Detail: stdErr.Detail(),
		Error:  stdErr,
	})
}
