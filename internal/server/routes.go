package server

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint on router.
func SetupRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/", h.Index)
	router.GET("/health", h.Health)

	strs := router.Group("/strings")
	{
		strs.POST("", h.CreateString)
		strs.GET("", h.ListStrings)
		strs.GET("/filter-by-natural-language", h.FilterByNaturalLanguage)
		strs.GET("/:string_value", h.GetString)
		strs.DELETE("/:string_value", h.DeleteString)
	}

	router.NoRoute(h.NotFound)
}
