package api

import (
	"errors"
	"net/http"

	"zyra/internal/brand"
	"zyra/internal/models"
	"zyra/internal/store"

	"github.com/gin-gonic/gin"
)

type BrandHandler struct {
	Brands *store.BrandStore
}

func NewBrandHandler(brands *store.BrandStore) *BrandHandler {
	return &BrandHandler{Brands: brands}
}

func (h *BrandHandler) GetBrand(c *gin.Context) {
	slug := c.Param("slug")
	if !brand.ValidSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	b, err := h.Brands.Get(slug)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

// UpdateBrand replaces the brand config wholesale, matching the editor's
// full-document submit. The slug in the path wins over any slug in the body.
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	slug := c.Param("slug")

	existing, err := h.Brands.Get(slug)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var updated models.Brand
	if err := c.ShouldBindJSON(&updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated.ID = existing.ID
	updated.Slug = slug
	updated.CreatedAt = existing.CreatedAt

	if err := h.Brands.Update(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetTheme returns the brand's presentation payload as data. Clients apply
// it themselves; the server never owns styling state.
func (h *BrandHandler) GetTheme(c *gin.Context) {
	slug := c.Param("slug")

	b, err := h.Brands.Get(slug)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, brand.BuildTheme(b))
}
