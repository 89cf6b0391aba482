package handlers

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/verigate/verigate/pkg/errors"
	"github.com/verigate/verigate/pkg/response"
)

// PageHandler serves the fixed HTML documents of the registration flow from
// the embedded filesystem.
type PageHandler struct {
	pages fs.FS
}

func NewPageHandler(pages fs.FS) *PageHandler {
	return &PageHandler{pages: pages}
}

// Serve returns a handler rendering the named document.
func (h *PageHandler) Serve(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := fs.ReadFile(h.pages, name)
		if err != nil {
			response.PlainError(c, apperrors.ErrInternalServer.WithInternal(err))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	}
}
