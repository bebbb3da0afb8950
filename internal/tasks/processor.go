package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"wonderlens/internal/ageband"
	"wonderlens/internal/config"
	"wonderlens/internal/models"
	"wonderlens/internal/pkg/vision"

	"github.com/hibiken/asynq"
	"github.com/tidwall/sjson"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsCountries is the fixed country cross-product for the daily news run.
// "global" doubles as the request-path fallback row.
var NewsCountries = []string{"global", "us", "in", "gb", "ca", "au", "fr", "de"}

// QuizCategories is the fixed category cross-product for the quiz run.
var QuizCategories = []string{"Animals", "Space", "Science", "History", "Nature", "Sports"}

// newsRetentionDays is how long daily packs stay before the post-run purge.
const newsRetentionDays = 14

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	DB        *gorm.DB
	config    *config.Config
	generator vision.ContentGenerator
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(db *gorm.DB, config *config.Config, generator vision.ContentGenerator) *TaskProcessor {
	return &TaskProcessor{
		DB:        db,
		config:    config,
		generator: generator,
	}
}

// HandleGenerateNewsTask runs the country x age-band cross-product, one model
// call per combination. A failed combination is logged and skipped; the run
// never aborts. Re-running the same day overwrites same-key rows, so the job
// is safe to repeat.
func (p *TaskProcessor) HandleGenerateNewsTask(ctx context.Context, t *asynq.Task) error {
	var payload GenerateNewsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	date := time.Now().Format("2006-01-02")
	if payload.Date != nil {
		date = *payload.Date
	}

	log.Printf("Generating daily news for %s", date)

	for _, country := range NewsCountries {
		for _, band := range ageband.All {
			content, err := p.generator.GenerateNews(ctx, country, band)
			if err != nil {
				log.Printf("news generation failed for (%s, %s): %v", country, band, err)
				continue
			}

			content = stampContent(content, band)

			pack := models.NewsPack{Date: date, Country: country, AgeBand: band, Content: content}
			err = p.DB.WithContext(ctx).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date"}, {Name: "country"}, {Name: "age_band"}},
				DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
			}).Create(&pack).Error
			if err != nil {
				log.Printf("failed to store news pack (%s, %s): %v", country, band, err)
				continue
			}

			log.Printf("stored news pack: %s %s %s", date, country, band)
		}
	}

	p.purgeExpiredNews(ctx)

	log.Println("Daily news generation finished")

	return nil
}

// HandleGenerateQuizTask runs the category x age-band cross-product. Same
// skip-and-continue semantics as the news run; quiz packs never expire.
func (p *TaskProcessor) HandleGenerateQuizTask(ctx context.Context, t *asynq.Task) error {
	var payload GenerateQuizPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	categories := QuizCategories
	if payload.Category != nil {
		categories = []string{*payload.Category}
	}

	log.Printf("Generating quizzes for %d categories", len(categories))

	for _, category := range categories {
		for _, band := range ageband.All {
			content, err := p.generator.GenerateQuiz(ctx, category, band)
			if err != nil {
				log.Printf("quiz generation failed for (%s, %s): %v", category, band, err)
				continue
			}

			content = stampContent(content, band)

			pack := models.QuizPack{Category: category, AgeBand: band, Content: content}
			err = p.DB.WithContext(ctx).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "category"}, {Name: "age_band"}},
				DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
			}).Create(&pack).Error
			if err != nil {
				log.Printf("failed to store quiz pack (%s, %s): %v", category, band, err)
				continue
			}

			log.Printf("stored quiz pack: %s %s", category, band)
		}
	}

	log.Println("Quiz generation finished")

	return nil
}

// purgeExpiredNews prefers the database-side purge function and falls back to
// a manual delete when it is unavailable.
func (p *TaskProcessor) purgeExpiredNews(ctx context.Context) {
	if err := p.DB.WithContext(ctx).Exec("SELECT purge_expired_kidnews()").Error; err == nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -newsRetentionDays).Format("2006-01-02")
	if err := p.DB.WithContext(ctx).Where("date < ?", cutoff).Delete(&models.NewsPack{}).Error; err != nil {
		log.Printf("failed to purge expired news packs: %v", err)
		return
	}

	log.Printf("purged news packs older than %s", cutoff)
}

// stampContent records which band a blob was generated for and when. Lookup
// keys live on the row; the stamp keeps the blob self-describing for the
// client.
func stampContent(content json.RawMessage, band string) json.RawMessage {
	stamped, err := sjson.SetBytes(content, "age_band", band)
	if err != nil {
		return content
	}
	stamped, err = sjson.SetBytes(stamped, "generated_at", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return content
	}
	return stamped
}
