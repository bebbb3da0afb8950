package controllers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"wonderlens/internal/models"
	"wonderlens/internal/pkg/imgprep"
	"wonderlens/internal/pkg/vision"
	"wonderlens/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// ScanController owns the image-analysis pipeline: upload, device and scan
// bookkeeping, model invocation, response persistence.
type ScanController struct {
	DB     *gorm.DB
	Store  storage.ObjectStore
	Vision vision.ObjectAnalyzer
}

type analyzeImageRequest struct {
	Image        string          `json:"image" binding:"required"`
	ChildAge     int             `json:"child_age"`
	ChildCountry string          `json:"child_country"`
	DeviceInfo   json.RawMessage `json:"device_info"`
	UserID       string          `json:"user_id"`
}

// AnalyzeImage handles POST /api/analyze-image. Steps fail independently:
// upload and scan creation are fatal, device bookkeeping and response
// persistence are logged and swallowed. Nothing is retried and nothing rolls
// back - a scan whose model call failed stays persisted.
func (sc *ScanController) AnalyzeImage(c *gin.Context) {
	ctx := c.Request.Context()

	var req analyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}

	data, err := decodeImagePayload(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image encoding"})
		return
	}

	// Server-side guard; the client already targets the same ceiling.
	if len(data) > imgprep.TargetBytes {
		if result, err := imgprep.Compress(data); err != nil {
			log.Printf("failed to recompress oversized image: %v", err)
		} else {
			data = result.Data
		}
	}

	imageURL, err := sc.Store.UploadImage(ctx, scanObjectName(req.UserID), data, "image/jpeg")
	if err != nil {
		log.Printf("failed to upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	var userID *string
	if req.UserID != "" {
		userID = &req.UserID
	}

	deviceID, err := sc.resolveDevice(ctx, req.DeviceInfo, userID)
	if err != nil {
		// The scan still goes through, just without a device association.
		log.Printf("failed to resolve device: %v", err)
		deviceID = nil
	}

	scan := models.Scan{
		DeviceID:     deviceID,
		UserID:       userID,
		ImageURL:     imageURL,
		ChildAge:     req.ChildAge,
		ChildCountry: req.ChildCountry,
		ImageSizeKB:  len(data) / 1024,
	}
	if err := sc.DB.WithContext(ctx).Create(&scan).Error; err != nil {
		log.Printf("failed to create scan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record scan"})
		return
	}

	payload, err := sc.Vision.AnalyzeObject(ctx, base64.StdEncoding.EncodeToString(data), req.ChildAge)
	if err != nil {
		// Partial success: the scan and its image stay persisted.
		log.Printf("model call failed for scan %d: %v", scan.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze image"})
		return
	}

	response := models.ModelResponse{ScanID: scan.ID, Response: payload}
	if err := sc.DB.WithContext(ctx).Create(&response).Error; err != nil {
		// The caller still gets the payload even if persistence failed.
		log.Printf("failed to store response for scan %d: %v", scan.ID, err)
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// resolveDevice finds or creates the device row matching the deviceId inside
// the supplied JSON. Returns (nil, nil) when no usable device info was sent.
// Find-then-create is deliberately not transactional; a duplicate row from
// two racing first-time scans is harmless because lookups are ordered.
func (sc *ScanController) resolveDevice(ctx context.Context, deviceInfo json.RawMessage, userID *string) (*uint, error) {
	if len(deviceInfo) == 0 {
		return nil, nil
	}

	externalID := gjson.GetBytes(deviceInfo, "deviceId").String()
	if externalID == "" {
		return nil, nil
	}

	var device models.Device
	err := sc.DB.WithContext(ctx).
		Where("device_info ->> 'deviceId' = ?", externalID).
		Order("id").
		First(&device).Error
	if err == nil {
		return &device.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	device = models.Device{DeviceInfo: deviceInfo, UserID: userID}
	if err := sc.DB.WithContext(ctx).Create(&device).Error; err != nil {
		return nil, err
	}

	return &device.ID, nil
}

// decodeImagePayload strips an optional data-URL prefix and decodes the
// base64 body.
func decodeImagePayload(image string) ([]byte, error) {
	if i := strings.IndexByte(image, ','); i >= 0 && strings.Contains(image[:i], "base64") {
		image = image[i+1:]
	}
	return base64.StdEncoding.DecodeString(image)
}

func scanObjectName(userID string) string {
	owner := userID
	if owner == "" {
		owner = "anonymous"
	}
	salt := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s_%d_%s.jpg", owner, time.Now().UnixMilli(), salt)
}
