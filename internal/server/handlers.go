package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/divah21/stage-one-backend/internal/errors"
	"github.com/divah21/stage-one-backend/internal/filter"
	"github.com/divah21/stage-one-backend/internal/model"
	"github.com/divah21/stage-one-backend/internal/observability"
	"github.com/divah21/stage-one-backend/internal/service"
)

// Version is reported by the index endpoint.
var Version = "1.0.0"

// Handlers binds the HTTP routes to the query service.
type Handlers struct {
	svc     *service.Service
	metrics *observability.Metrics
}

// NewHandlers returns handlers over svc. metrics may be nil.
func NewHandlers(svc *service.Service, metrics *observability.Metrics) *Handlers {
	return &Handlers{svc: svc, metrics: metrics}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Stats     model.Stats `json:"stats"`
}

// Index lists the available endpoints.
func (h *Handlers) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "String Analysis API",
		"version": Version,
		"endpoints": gin.H{
			"create_string":           "POST /strings",
			"get_string":              "GET /strings/{string_value}",
			"get_all_strings":         "GET /strings",
			"filter_natural_language": "GET /strings/filter-by-natural-language?query=...",
			"delete_string":           "DELETE /strings/{string_value}",
			"health":                  "GET /health",
		},
	})
}

// Health reports liveness together with the current store summary.
func (h *Handlers) Health(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "success",
		Message:   "Server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Stats:     *st,
	})
}

// CreateString analyzes and stores the "value" of a JSON body.
func (h *Handlers) CreateString(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		abortWithError(c, errors.Invalidf("Invalid request body"))
		return
	}

	var body map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &body) != nil || len(body) == 0 {
		abortWithError(c, errors.Invalidf("Invalid request body"))
		return
	}
	value, ok := body["value"]
	if !ok || value == nil {
		abortWithError(c, errors.Invalidf(`Missing "value" field`))
		return
	}

	rec, err := h.svc.CreateFromAny(c.Request.Context(), value)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.metrics.StringCreated()
	c.JSON(http.StatusCreated, rec)
}

// GetString returns the analysis of the path value.
func (h *Handlers) GetString(c *gin.Context) {
	rec, err := h.svc.GetByValue(c.Request.Context(), c.Param("string_value"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListStrings returns the analyses matching the query string filters.
func (h *Handlers) ListStrings(c *gin.Context) {
	f, err := filter.FromQuery(c.Request.URL.Query())
	if err != nil {
		abortWithError(c, err)
		return
	}

	res, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// FilterByNaturalLanguage translates ?query= into filters and lists matches.
func (h *Handlers) FilterByNaturalLanguage(c *gin.Context) {
	res, err := h.svc.FilterByNaturalLanguage(c.Request.Context(), c.Query("query"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteString removes the analysis of the path value.
func (h *Handlers) DeleteString(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("string_value")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// NotFound answers unmatched routes.
func (h *Handlers) NotFound(c *gin.Context) {
	c.Set(errorCodeKey, errors.KindNotFound)
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
		Status: "error",
		Error:  "Route " + c.Request.Method + " " + c.Request.URL.Path + " not found",
		Code:   errors.KindNotFound,
	})
}
