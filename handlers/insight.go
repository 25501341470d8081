package handlers

import (
	"net/http"
	"strconv"
	"time"

	insightRepo "harborview/database/repository/insight"
	"harborview/models"
	"harborview/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InsightHandler exposes the knowledge base over HTTP for back-office staff.
type InsightHandler struct {
	Repo insightRepo.InsightRepository
}

func NewInsightHandler(repo insightRepo.InsightRepository) *InsightHandler {
	return &InsightHandler{Repo: repo}
}

// ListInsightsHandler returns recent insights, or search results when a
// query is given.
func (h *InsightHandler) ListInsightsHandler(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var (
		insights []models.Insight
		err      error
	)
	if query := c.Query("q"); query != "" {
		insights, err = h.Repo.Search(c.Request.Context(), query, c.Query("category"), limit)
	} else {
		insights, err = h.Repo.ListRecent(c.Request.Context(), limit)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list insights", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights, "count": len(insights)})
}

// CreateInsightHandler saves a staff-authored insight.
func (h *InsightHandler) CreateInsightHandler(c *gin.Context) {
	var req struct {
		Category   string   `json:"category" binding:"required"`
		Content    string   `json:"content" binding:"required"`
		Tags       []string `json:"tags"`
		Importance int      `json:"importance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.Importance < 1 {
		req.Importance = 1
	}

	insight := &models.Insight{
		ID:         uuid.NewString(),
		Category:   req.Category,
		Content:    req.Content,
		Tags:       req.Tags,
		Importance: req.Importance,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Repo.Save(c.Request.Context(), insight); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save insight", err.Error())
		return
	}
	c.JSON(http.StatusCreated, insight)
}
