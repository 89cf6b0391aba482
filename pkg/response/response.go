package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/verigate/verigate/pkg/errors"
)

// Redirect issues the 302 redirects the registration flow is built on.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// PlainError writes a plain-text failure derived from an AppError. The
// browser-facing flow deliberately answers with human-readable sentences
// rather than a JSON envelope.
func PlainError(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.String(status, appErr.Message)
}
