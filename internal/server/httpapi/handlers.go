package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murillocortez/olhar-autoral/internal/catalog"
	"github.com/murillocortez/olhar-autoral/internal/common"
	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type catalogResponse struct {
	Loaded   bool             `json:"loaded"`
	LoadedAt *time.Time       `json:"loadedAt"`
	Count    int              `json:"count"`
	Images   []catalog.Record `json:"images"`
}

func (h *Handler) GetCatalog(c *gin.Context) {
	snap := h.catalog.Snapshot()

	resp := catalogResponse{
		Loaded: snap.Loaded,
		Count:  len(snap.Records),
		Images: nonNil(snap.Records),
	}
	if snap.Loaded {
		resp.LoadedAt = &snap.LoadedAt
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetCategory(c *gin.Context) {
	category := c.Param("category")

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"folder":   catalog.FolderFor(category),
		"images":   nonNil(h.catalog.Category(category)),
	})
}

// GetImage resolves one image. With no match the caller's fallback is
// returned with found=false; without a fallback the answer is 404.
func (h *Handler) GetImage(c *gin.Context) {
	category := c.Query("category")
	filename := c.Query("filename")
	fallback := c.Query("fallback")

	if category == "" && filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category or filename is required"})
		return
	}

	if url, ok := h.catalog.Image(category, filename); ok {
		c.JSON(http.StatusOK, gin.H{"url": url, "found": true})
		return
	}
	if fallback != "" {
		c.JSON(http.StatusOK, gin.H{"url": fallback, "found": false})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"url": nil, "found": false})
}

func (h *Handler) GetGallery(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loaded": h.catalog.Snapshot().Loaded,
		"items":  h.catalog.Gallery(h.layout),
	})
}

type briefingRequest struct {
	Name                string `json:"nome" form:"nome" binding:"required"`
	Profession          string `json:"profissao" form:"profissao"`
	Email               string `json:"email" form:"email" binding:"required,email"`
	Phone               string `json:"telefone" form:"telefone"`
	Goal                string `json:"objetivo" form:"objetivo"`
	CreativeDescription string `json:"descricao" form:"descricao"`
	DesiredPerception   string `json:"como_ser_visto" form:"como_ser_visto"`
	References          string `json:"referencias" form:"referencias"`
}

func (r briefingRequest) model() *models.Briefing {
	return &models.Briefing{
		Name:                r.Name,
		Profession:          r.Profession,
		Email:               r.Email,
		Phone:               r.Phone,
		Goal:                r.Goal,
		CreativeDescription: r.CreativeDescription,
		DesiredPerception:   r.DesiredPerception,
		References:          r.References,
	}
}

func (h *Handler) PostBriefing(c *gin.Context) {
	var req briefingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome and a valid email are required", "details": err.Error()})
		return
	}

	saved, err := h.briefings.Submit(c.Request.Context(), req.model())
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error(c.Request.Context(), "briefing submission failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send the briefing, please try again"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   "success",
		"id":       saved.ID,
		"notified": saved.NotifiedAt != nil,
	})
}

func (h *Handler) PostReload(c *gin.Context) {
	snap, err := h.catalog.Reload(c.Request.Context())
	if err != nil {
		h.logger.Error(c.Request.Context(), "catalog reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}

	h.logger.Info(c.Request.Context(), "catalog reloaded by admin", "admin", c.GetString(adminSubjectKey), "images", len(snap.Records))
	c.JSON(http.StatusOK, gin.H{"count": len(snap.Records), "loadedAt": snap.LoadedAt})
}

func (h *Handler) GetBriefings(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	list, err := h.briefings.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error(c.Request.Context(), "listing briefings failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list briefings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"briefings": nonNil(list)})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
