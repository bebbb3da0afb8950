package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"wonderlens/internal/config"
	"wonderlens/internal/db"
	"wonderlens/internal/models"
	"wonderlens/internal/routes"
	"wonderlens/internal/testhelpers"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

var _ = Describe("ContentController", func() {
	var (
		dbConn *gorm.DB
		router *gin.Engine
	)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		cfg, err := config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		dbConn, err = db.InitDB(cfg.DatabaseURL)
		if err != nil {
			Skip("database not available: " + err.Error())
		}

		testhelpers.CleanupDB(dbConn)

		router = routes.SetupRouter(dbConn, cfg, &fakeStore{}, &stubAnalyzer{})
	})

	Describe("GET /api/kidnews", func() {
		today := func() string { return time.Now().Format("2006-01-02") }

		It("returns the exact country row when it exists", func() {
			ctx := context.Background()
			testhelpers.CreateNewsPack(dbConn, ctx, &models.NewsPack{
				Date: today(), Country: "in", AgeBand: "8-9",
				Content: json.RawMessage(`{"stories":[{"category":"science","headline":"India story","body":"..."}]}`),
			})
			testhelpers.CreateNewsPack(dbConn, ctx, &models.NewsPack{
				Date: today(), Country: "global", AgeBand: "8-9",
				Content: json.RawMessage(`{"stories":[{"category":"science","headline":"Global story","body":"..."}]}`),
			})

			resp := get("/api/kidnews?country=in&age=8")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(gjson.GetBytes(resp.Body.Bytes(), "stories.0.headline").String()).To(Equal("India story"))
		})

		It("falls back to the global row when the country has none", func() {
			testhelpers.CreateNewsPack(dbConn, context.Background(), &models.NewsPack{
				Date: today(), Country: "global", AgeBand: "8-9",
				Content: json.RawMessage(`{"stories":[{"category":"science","headline":"Global story","body":"..."}]}`),
			})

			resp := get("/api/kidnews?country=fr&age=8")

			Expect(resp.Code).To(Equal(http.StatusOK))
			Expect(gjson.GetBytes(resp.Body.Bytes(), "stories.0.headline").String()).To(Equal("Global story"))
		})

		It("ignores stale rows from other days", func() {
			yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
			testhelpers.CreateNewsPack(dbConn, context.Background(), &models.NewsPack{
				Date: yesterday, Country: "global", AgeBand: "8-9",
			})

			Expect(get("/api/kidnews?country=fr&age=8").Code).To(Equal(http.StatusNotFound))
		})

		It("returns 404 when neither row exists", func() {
			Expect(get("/api/kidnews?country=fr&age=8").Code).To(Equal(http.StatusNotFound))
		})

		It("rejects a missing country", func() {
			Expect(get("/api/kidnews?age=8").Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a missing or out-of-range age", func() {
			Expect(get("/api/kidnews?country=in").Code).To(Equal(http.StatusBadRequest))
			Expect(get("/api/kidnews?country=in&age=5").Code).To(Equal(http.StatusBadRequest))
			Expect(get("/api/kidnews?country=in&age=11").Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/quiz", func() {
		It("returns the exact category row unlabeled", func() {
			testhelpers.CreateQuizPack(dbConn, context.Background(), &models.QuizPack{
				Category: "Space", AgeBand: "6-7",
				Content: json.RawMessage(`{"category":"Space","questions":[]}`),
			})

			resp := get("/api/quiz?category=Space&age=6")

			Expect(resp.Code).To(Equal(http.StatusOK))
			body := resp.Body.Bytes()
			Expect(gjson.GetBytes(body, "category").String()).To(Equal("Space"))
			Expect(gjson.GetBytes(body, "fallback_category").Exists()).To(BeFalse())
		})

		It("falls back to any row for the band and labels it", func() {
			testhelpers.CreateQuizPack(dbConn, context.Background(), &models.QuizPack{
				Category: "Animals", AgeBand: "6-7",
				Content: json.RawMessage(`{"category":"Animals","questions":[]}`),
			})

			resp := get("/api/quiz?category=Space&age=6")

			Expect(resp.Code).To(Equal(http.StatusOK))
			body := resp.Body.Bytes()
			Expect(gjson.GetBytes(body, "category").String()).To(Equal("Animals"))
			Expect(gjson.GetBytes(body, "fallback_category").Bool()).To(BeTrue())
		})

		It("does not fall back across bands", func() {
			testhelpers.CreateQuizPack(dbConn, context.Background(), &models.QuizPack{
				Category: "Animals", AgeBand: "10",
			})

			Expect(get("/api/quiz?category=Space&age=6").Code).To(Equal(http.StatusNotFound))
		})

		It("rejects a missing category", func() {
			Expect(get("/api/quiz?age=6").Code).To(Equal(http.StatusBadRequest))
		})
	})
})
