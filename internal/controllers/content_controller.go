package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"wonderlens/internal/ageband"
	"wonderlens/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/sjson"
	"gorm.io/gorm"
)

// ContentController serves the pre-generated news and quiz packs. Every
// request re-queries the store; there is no caching layer.
type ContentController struct {
	DB *gorm.DB
}

// GetKidNews handles GET /api/kidnews?country=&age=. Lookup order: exact
// (today, country, band), then (today, "global", band). A missing row after
// both attempts is 404; a store error is 500.
func (cc *ContentController) GetKidNews(c *gin.Context) {
	ctx := c.Request.Context()

	country := c.Query("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country is required"})
		return
	}

	band, ok := bandFromQuery(c)
	if !ok {
		return
	}

	today := time.Now().Format("2006-01-02")

	var pack models.NewsPack
	err := cc.DB.WithContext(ctx).
		Where("date = ? AND country = ? AND age_band = ?", today, country, band).
		First(&pack).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = cc.DB.WithContext(ctx).
			Where("date = ? AND country = ? AND age_band = ?", today, "global", band).
			First(&pack).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No news available"})
		return
	}
	if err != nil {
		log.Printf("failed to get news pack: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", pack.Content)
}

// GetQuiz handles GET /api/quiz?category=&age=. Falls back from the exact
// (category, band) row to any row for the band; fallback responses are
// labeled so the client can tell a category miss from a hit.
func (cc *ContentController) GetQuiz(c *gin.Context) {
	ctx := c.Request.Context()

	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	band, ok := bandFromQuery(c)
	if !ok {
		return
	}

	fallback := false

	var pack models.QuizPack
	err := cc.DB.WithContext(ctx).
		Where("category = ? AND age_band = ?", category, band).
		First(&pack).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fallback = true
		err = cc.DB.WithContext(ctx).
			Where("age_band = ?", band).
			Order("updated_at DESC").
			First(&pack).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quiz available"})
		return
	}
	if err != nil {
		log.Printf("failed to get quiz pack: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	content := pack.Content
	if fallback {
		labeled, err := sjson.SetBytes(content, "fallback_category", true)
		if err == nil {
			content = labeled
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", content)
}

// bandFromQuery parses the age parameter and maps it to a band, answering
// 400 itself when the age is missing or outside 6-10.
func bandFromQuery(c *gin.Context) (string, bool) {
	age, err := strconv.Atoi(c.Query("age"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age is required"})
		return "", false
	}

	band, ok := ageband.FromAge(age)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age must be between 6 and 10"})
		return "", false
	}

	return band, true
}
