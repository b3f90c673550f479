package rest

import (
	"net/http"
	"strings"

	"medicore-be/internal/auth"
	"medicore-be/internal/cart"
	"medicore-be/internal/catalog"
	"medicore-be/internal/logger"
	"medicore-be/internal/metrics"
	mw "medicore-be/internal/middleware"
	"medicore-be/internal/order"
	"medicore-be/internal/prescription"
	"medicore-be/internal/report"
	"medicore-be/internal/user"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Deps are the services and infrastructure the HTTP surface is built on.
type Deps struct {
	Users         user.Service
	Catalog       catalog.Service
	Carts         cart.Service
	Orders        order.Service
	Prescriptions prescription.Service
	Reports       report.Service

	Tokens  *auth.TokenManager
	Limiter *mw.RateLimiter
	Metrics *metrics.Registry
	DB      Pinger

	CORSOrigin     string
	MaxUploadBytes int64

	// SecureCookies marks the session cookie Secure; set it when served over TLS.
	SecureCookies bool
}

// NewServer builds the echo instance with every /api route registered.
func NewServer(d Deps) *echo.Echo {
	if d.Metrics == nil {
		d.Metrics = metrics.NewRegistry()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echo.WrapMiddleware(logger.RequestIDMiddleware))
	e.Use(mw.AccessLog(d.Metrics))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigin),
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			logger.RequestIDHeader,
		},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		ExposeHeaders:    []string{logger.RequestIDHeader, echo.HeaderContentDisposition},
		AllowCredentials: true,
	}))
	if d.Tokens != nil {
		e.Use(echo.WrapMiddleware(mw.NewAuthenticator(d.Tokens).Middleware))
	}
	if d.Limiter != nil {
		e.Use(echo.WrapMiddleware(d.Limiter.Middleware))
	}

	registerRoutes(e.Group("/api"), d)
	return e
}

func corsOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func registerRoutes(api *echo.Group, d Deps) {
	authH := &authHandler{users: d.Users, secureCookies: d.SecureCookies}
	catalogH := &catalogHandler{catalog: d.Catalog}
	cartH := &cartHandler{carts: d.Carts}
	orderH := &orderHandler{orders: d.Orders}
	rxH := &prescriptionHandler{prescriptions: d.Prescriptions, maxBytes: d.MaxUploadBytes}
	adminH := &adminHandler{reports: d.Reports, users: d.Users}
	systemH := &systemHandler{db: d.DB, metrics: d.Metrics}

	// -- System --
	api.GET("/health", systemH.health)
	api.GET("/metrics", systemH.snapshot)

	// -- Auth --
	api.POST("/auth/register", authH.register)
	api.POST("/auth/login", authH.login)
	api.POST("/auth/logout", authH.logout)
	api.POST("/auth/forgot-password", authH.forgotPassword)
	api.POST("/auth/reset-password", authH.resetPassword)
	api.GET("/auth/me", authH.me, mw.RequireUser)
	api.PUT("/auth/update", authH.updateProfile, mw.RequireUser)

	// -- Catalog --
	api.GET("/medicines", catalogH.list)
	api.GET("/medicines/categories", catalogH.categories)
	api.GET("/medicines/:id", catalogH.get)
	api.GET("/recommendations/popular", catalogH.popular)
	api.POST("/medicines", catalogH.create, mw.RequireAdmin)
	api.PUT("/medicines/:id", catalogH.update, mw.RequireAdmin)
	api.DELETE("/medicines/:id", catalogH.delete, mw.RequireAdmin)

	// -- Cart --
	carts := api.Group("/cart", mw.RequireUser)
	carts.GET("", cartH.get)
	carts.POST("/add", cartH.add)
	carts.PUT("/update/:medicineId", cartH.update)
	carts.DELETE("/remove/:medicineId", cartH.remove)
	carts.DELETE("/clear", cartH.clear)

	// -- Orders --
	api.GET("/orders/all/admin", orderH.listAll, mw.RequireAdmin)
	api.PUT("/orders/:id/status", orderH.updateStatus, mw.RequireAdmin)
	api.POST("/orders", orderH.place, mw.RequireUser)
	api.GET("/orders", orderH.listMine, mw.RequireUser)
	api.GET("/orders/:id", orderH.get, mw.RequireUser)
	api.GET("/orders/:id/invoice", orderH.invoice, mw.RequireUser)

	// -- Prescriptions --
	api.GET("/prescriptions", rxH.listMine, mw.RequireUser)
	api.POST("/prescriptions/upload", rxH.upload, mw.RequireUser)
	api.GET("/prescriptions/all", rxH.listAll, mw.RequireAdmin)
	api.PUT("/prescriptions/:id/status", rxH.updateStatus, mw.RequireAdmin)
	api.PUT("/prescriptions/:id/verify", rxH.updateStatus, mw.RequireAdmin)
	api.GET("/prescriptions/:id/file", rxH.file, mw.RequireAdmin)

	// -- Admin --
	admin := api.Group("/admin", mw.RequireAdmin)
	admin.GET("/stats", adminH.stats)
	admin.GET("/alerts", adminH.alerts)
	admin.GET("/reports", adminH.reportSummary)
	admin.GET("/users", adminH.listUsers)
	admin.GET("/inventory/export", adminH.exportInventory)
	api.PUT("/users/:id/role", adminH.setRole, mw.RequireAdmin)
}
