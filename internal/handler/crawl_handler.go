package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meejain/da-crawl/internal/model"
	"github.com/meejain/da-crawl/internal/repository"
	"github.com/meejain/da-crawl/internal/service"
)

// CrawlHandler exposes crawl-job operations over HTTP.
type CrawlHandler struct {
	crawlService service.CrawlService
}

func NewCrawlHandler(svc service.CrawlService) *CrawlHandler { return &CrawlHandler{crawlService: svc} }

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

func paginationFromQuery(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return repository.Pagination{Page: page, PageSize: size}
}

// Create registers a new crawl job for the authenticated user.
func (h *CrawlHandler) Create(c *gin.Context) {
	var in model.CreateCrawlJobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	uidAny, _ := c.Get("user_id")
	in.UserID = uidAny.(uint)

	id, err := h.crawlService.Create(&in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List returns the authenticated user's crawl jobs (paginated).
func (h *CrawlHandler) List(c *gin.Context) {
	uidAny, _ := c.Get("user_id")
	userID := uidAny.(uint)

	items, err := h.crawlService.List(userID, paginationFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns one crawl job.
func (h *CrawlHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.crawlService.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Update changes a job's root path or status.
func (h *CrawlHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var in model.UpdateCrawlJobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.crawlService.Update(id, &in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// Delete removes a crawl job and its reports.
func (h *CrawlHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.crawlService.Delete(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Start queues the crawl for processing.
func (h *CrawlHandler) Start(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.crawlService.Start(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": model.StatusQueued})
}

// Stop requests a running crawl to halt.
func (h *CrawlHandler) Stop(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.crawlService.Stop(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": model.StatusStopped})
}

// Reports returns the per-path outcomes recorded for a job (paginated).
func (h *CrawlHandler) Reports(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	reports, err := h.crawlService.Reports(id, paginationFromQuery(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// RegisterProtectedRoutes mounts the crawl endpoints on the given group.
func (h *CrawlHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/crawls", h.Create)
	rg.GET("/crawls", h.List)
	rg.GET("/crawls/:id", h.Get)
	rg.PUT("/crawls/:id", h.Update)
	rg.DELETE("/crawls/:id", h.Delete)
	rg.PATCH("/crawls/:id/start", h.Start)
	rg.PATCH("/crawls/:id/stop", h.Stop)
	rg.GET("/crawls/:id/reports", h.Reports)
}
