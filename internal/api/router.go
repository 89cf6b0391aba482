// Package api assembles the gin engine for the registration flow.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/verigate/verigate/internal/handlers"
	"github.com/verigate/verigate/internal/middleware"
	"github.com/verigate/verigate/internal/services"
	"github.com/verigate/verigate/web"
)

// NewRouter builds the gin engine, wires middleware and registers the
// registration, verification, and login routes.
func NewRouter(db *gorm.DB, accounts *services.AccountService) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if accounts == nil {
		return nil, fmt.Errorf("account service must be provided")
	}

	pagesFS, err := web.FS()
	if err != nil {
		return nil, fmt.Errorf("load embedded pages: %w", err)
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())

	pages := handlers.NewPageHandler(pagesFS)
	accountHandler := handlers.NewAccountHandler(accounts)

	r.GET("/", pages.Serve("index.html"))
	r.POST("/", accountHandler.SignUp)

	r.GET("/verify/email-sent", pages.Serve("email-sent.html"))
	r.GET("/verify/users/:verifiedId", accountHandler.Verify)

	r.GET("/login", pages.Serve("login.html"))
	r.POST("/login", accountHandler.LogIn)

	r.GET("/success", pages.Serve("success.html"))

	r.GET("/health", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}
