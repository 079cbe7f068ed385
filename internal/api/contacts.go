package api

import (
	"net/http"

	"zyra/internal/models"
	"zyra/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactHandler struct {
	DB  *gorm.DB
	Hub *ws.Hub
}

func NewContactHandler(db *gorm.DB, hub *ws.Hub) *ContactHandler {
	return &ContactHandler{DB: db, Hub: hub}
}

type ContactInterestRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// CreateInterest captures a lead from the public interest form.
func (h *ContactHandler) CreateInterest(c *gin.Context) {
	var req ContactInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interest := models.ContactInterest{
		Email:  req.Email,
		Phone:  req.Phone,
		Status: "new",
	}
	if err := h.DB.Create(&interest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save interest"})
		return
	}

	h.Hub.NotifyContactInterest(interest)

	c.JSON(http.StatusCreated, interest)
}

func (h *ContactHandler) ListInterests(c *gin.Context) {
	var interests []models.ContactInterest
	if err := h.DB.Order("created_at DESC").Find(&interests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if interests == nil {
		interests = []models.ContactInterest{}
	}
	c.JSON(http.StatusOK, interests)
}

func (h *ContactHandler) DeleteInterest(c *gin.Context) {
	id := c.Param("id")

	result := h.DB.Delete(&models.ContactInterest{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete interest"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interest not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Interest deleted"})
}
