package testhelpers

import (
	"context"
	"encoding/json"
	"fmt"

	"wonderlens/internal/models"

	g "github.com/onsi/gomega"
	"gorm.io/gorm"
)

// Factories for the rows the controller and task specs seed. Each one fills
// the fields a spec usually doesn't care about and asserts the insert worked.

func CreateDevice(db *gorm.DB, ctx context.Context, device *models.Device) *models.Device {
	if len(device.DeviceInfo) == 0 {
		device.DeviceInfo = json.RawMessage(`{"deviceId":"test-device","deviceType":"phone","osVersion":"17.0","appVersion":"1.0.0"}`)
	}

	g.Expect(db.WithContext(ctx).Create(device).Error).To(g.Succeed())
	return device
}

func DeviceInfoFor(externalID string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"deviceId":%q,"deviceType":"phone","osVersion":"17.0","appVersion":"1.0.0"}`, externalID))
}

func CreateScan(db *gorm.DB, ctx context.Context, scan *models.Scan) *models.Scan {
	if scan.ImageURL == "" {
		scan.ImageURL = "http://localhost:9000/scan-images/anonymous_0_test.jpg"
	}
	if scan.ChildAge == 0 {
		scan.ChildAge = 8
	}
	if scan.ChildCountry == "" {
		scan.ChildCountry = "us"
	}

	g.Expect(db.WithContext(ctx).Create(scan).Error).To(g.Succeed())
	return scan
}

func CreateModelResponse(db *gorm.DB, ctx context.Context, response *models.ModelResponse) *models.ModelResponse {
	if len(response.Response) == 0 {
		response.Response = json.RawMessage(`{"object":"maple leaf","lenses":[]}`)
	}

	g.Expect(db.WithContext(ctx).Create(response).Error).To(g.Succeed())
	return response
}

func CreateNewsPack(db *gorm.DB, ctx context.Context, pack *models.NewsPack) *models.NewsPack {
	if len(pack.Content) == 0 {
		pack.Content = json.RawMessage(`{"stories":[{"category":"science","headline":"Test","body":"Test."}]}`)
	}

	g.Expect(db.WithContext(ctx).Create(pack).Error).To(g.Succeed())
	return pack
}

func CreateQuizPack(db *gorm.DB, ctx context.Context, pack *models.QuizPack) *models.QuizPack {
	if len(pack.Content) == 0 {
		pack.Content = json.RawMessage(`{"category":"Animals","questions":[]}`)
	}

	g.Expect(db.WithContext(ctx).Create(pack).Error).To(g.Succeed())
	return pack
}
