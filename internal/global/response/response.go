package response

import (
	"campus-discover/config"
	"campus-discover/internal/global/logger"
	"campus-discover/internal/global/sentry"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Predefined request-terminal errors. One-off messages are built with
// New or WithMessage at the call site.
var (
	ErrInvalidRequest = New(http.StatusBadRequest, "Invalid request")
	ErrTokenRequired  = New(http.StatusUnauthorized, "Access token required")
	ErrTokenInvalid   = New(http.StatusForbidden, "Invalid or expired token")
	ErrPermission     = New(http.StatusForbidden, "Insufficient permissions")
	ErrNotFound       = New(http.StatusNotFound, "Not found")
	ErrInternal       = New(http.StatusInternalServerError, "Internal server error")
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Origin  string `json:"origin,omitempty"`
}

type ResponseBody struct {
	Error ErrorBody `json:"error"`
}

// Fail renders err as {"error":{"message":...}} with the error's status.
// Unclassified errors become 500s. Server errors are reported to Sentry;
// in debug mode the origin diagnostic is included in the body.
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrInternal.WithOrigin(err)
	}

	if e.Status >= http.StatusInternalServerError {
		sentry.CaptureException(c, e)
	}

	body := ResponseBody{Error: ErrorBody{Message: e.Message}}
	if config.Get().Mode == config.ModeDebug {
		body.Error.Origin = e.Origin
	}
	c.JSON(e.Status, body)
}

// Recovery is deferred by the recovery middleware: it converts a panic
// into a 500 response on the current request.
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		logger.New("Recovery").Error("panic recovered",
			"panic", fmt.Sprintf("%v", r),
			"path", c.Request.URL.Path,
		)
		Fail(c, ErrInternal.WithOrigin(fmt.Errorf("panic: %v", r)))
		c.Abort()
	}
}
