package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/verigate/verigate/internal/services"
	"github.com/verigate/verigate/pkg/logger"
	"github.com/verigate/verigate/pkg/response"
)

// AccountHandler exposes the signup, verification, and login flows over the
// form-encoded HTML surface.
type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// POST /
//
// The response never reflects the signup outcome: persistence and email
// dispatch are best-effort, and the caller lands on the pending page either way.
func (h *AccountHandler) SignUp(c *gin.Context) {
	name := c.PostForm("userName")
	password := c.PostForm("userPass")
	email := c.PostForm("userEmail")

	if err := h.accounts.SignUp(c.Request.Context(), name, password, email); err != nil {
		logger.WithModule("handlers").Error("signup failed before dispatch", zap.Error(err))
	}

	response.Redirect(c, "/verify/email-sent")
}

// GET /verify/users/:verifiedId
func (h *AccountHandler) Verify(c *gin.Context) {
	token := c.Param("verifiedId")

	if err := h.accounts.Verify(c.Request.Context(), token); err != nil {
		response.PlainError(c, err)
		return
	}

	response.Redirect(c, "/success")
}

// POST /login
func (h *AccountHandler) LogIn(c *gin.Context) {
	email := c.PostForm("loginEmail")
	password := c.PostForm("loginPassword")

	if err := h.accounts.LogIn(c.Request.Context(), email, password); err != nil {
		response.PlainError(c, err)
		return
	}

	response.Redirect(c, "/success")
}
