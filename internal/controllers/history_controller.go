package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"wonderlens/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HistoryController serves scan history, scan deletion and the community
// feed.
type HistoryController struct {
	DB *gorm.DB
}

// historyRow is one scan joined with its response payload. The inner join
// drops scans whose model call never produced a response row.
type historyRow struct {
	ScanID    uint
	ImageURL  string
	CreatedAt time.Time
	Response  json.RawMessage
}

type historyItem struct {
	ID           uint            `json:"id"`
	ImageURL     string          `json:"image_url"`
	Timestamp    time.Time       `json:"timestamp"`
	LearningData json.RawMessage `json:"learningData"`
}

// GetHistory handles GET /api/scans/history?device_id=.
func (hc *HistoryController) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}

	device, err := hc.findDevice(ctx, deviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}
	if err != nil {
		log.Printf("failed to look up device: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var rows []historyRow
	err = hc.scanWithResponses(ctx).
		Where("scans.device_id = ?", device.ID).
		Scan(&rows).Error
	if err != nil {
		log.Printf("failed to get scan history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, toHistoryItems(rows))
}

// DeleteScan handles DELETE /api/scans/:id?device_id=. The scan must belong
// to the requesting device. Response rows go first, then the scan; there is
// no transactional guarantee beyond statement order.
func (hc *HistoryController) DeleteScan(c *gin.Context) {
	ctx := c.Request.Context()

	scanID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return
	}

	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}

	device, err := hc.findDevice(ctx, deviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}
	if err != nil {
		log.Printf("failed to look up device: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	var scan models.Scan
	err = hc.DB.WithContext(ctx).
		Where("id = ? AND device_id = ?", scanID, device.ID).
		First(&scan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scan not found"})
		return
	}
	if err != nil {
		log.Printf("failed to look up scan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if err := hc.DB.WithContext(ctx).Where("scan_id = ?", scan.ID).Delete(&models.ModelResponse{}).Error; err != nil {
		log.Printf("failed to delete responses for scan %d: %v", scan.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete scan"})
		return
	}
	if err := hc.DB.WithContext(ctx).Delete(&scan).Error; err != nil {
		log.Printf("failed to delete scan %d: %v", scan.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete scan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetCommunity handles GET /api/scans/community?limit=&age=. Same shape as
// history but unfiltered by device; an optional viewer age narrows results to
// a +/-2 year window clamped to the supported range.
func (hc *HistoryController) GetCommunity(c *gin.Context) {
	ctx := c.Request.Context()

	limit := getLimitWithDefault(c, 20)

	query := hc.scanWithResponses(ctx).Limit(limit)

	if ageParam := c.Query("age"); ageParam != "" {
		age, err := strconv.Atoi(ageParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid age"})
			return
		}
		lo, hi := age-2, age+2
		if lo < 6 {
			lo = 6
		}
		if hi > 12 {
			hi = 12
		}
		query = query.Where("scans.child_age BETWEEN ? AND ?", lo, hi)
	}

	var rows []historyRow
	if err := query.Scan(&rows).Error; err != nil {
		log.Printf("failed to get community scans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, toHistoryItems(rows))
}

func (hc *HistoryController) findDevice(ctx context.Context, externalID string) (*models.Device, error) {
	var device models.Device
	err := hc.DB.WithContext(ctx).
		Where("device_info ->> 'deviceId' = ?", externalID).
		Order("id").
		First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (hc *HistoryController) scanWithResponses(ctx context.Context) *gorm.DB {
	return hc.DB.WithContext(ctx).
		Table("scans").
		Select("scans.id AS scan_id, scans.image_url, scans.created_at, openai_responses.response").
		Joins("JOIN openai_responses ON openai_responses.scan_id = scans.id").
		Order("scans.created_at DESC")
}

func toHistoryItems(rows []historyRow) []historyItem {
	items := make([]historyItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, historyItem{
			ID:           row.ScanID,
			ImageURL:     row.ImageURL,
			Timestamp:    row.CreatedAt,
			LearningData: row.Response,
		})
	}
	return items
}

func getLimitWithDefault(c *gin.Context, defaultValue int) int {
	var err error
	limit := defaultValue
	if c.Query("limit") != "" {
		limit, err = strconv.Atoi(c.Query("limit"))
		if err != nil {
			log.Printf("failed to parse limit: %v, using default value: %d", err, defaultValue)
			return defaultValue
		}
	}
	return limit
}
