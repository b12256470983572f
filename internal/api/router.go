package api

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), Cors(), RequestID())

	r.GET("/", h.Health)

	api := r.Group("/api")
	api.GET("/scrape", h.Scrape)
	api.GET("/jobs", h.Jobs)

	return r
}
