package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/damaloy/marketplace-api/internal/middleware"
)

// NewRouter assembles the gin engine: middleware, service endpoints and all
// resource routes. Metrics may be nil, in which case no collector runs (used
// by tests to avoid duplicate prometheus registration).
func NewRouter(cfg HandlerConfig, metrics *middleware.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestLogger(cfg.Logger))
	if metrics != nil {
		r.Use(metrics.Handler())
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Damaloy API is running successfully!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterOrdersRoutes(r, cfg)
	RegisterPaymentsRoutes(r, cfg)
	RegisterUsersRoutes(r, cfg)
	RegisterVendorsRoutes(r, cfg)
	RegisterProductsRoutes(r, cfg)
	RegisterAdsRoutes(r, cfg)
	RegisterCartRoutes(r, cfg)
	RegisterWatchlistRoutes(r, cfg)
	RegisterReviewsRoutes(r, cfg)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	return r
}
