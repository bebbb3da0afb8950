package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"wonderlens/internal/config"
	"wonderlens/internal/db"
	"wonderlens/internal/pkg/vision"
	"wonderlens/internal/tasks"

	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY is not set")
	}

	dbConn, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Worker connected to database.")

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	newsTask, err := tasks.NewGenerateNewsTask(nil)
	if err != nil {
		log.Fatalf("Failed to create news task: %v", err)
	}

	quizTask, err := tasks.NewGenerateQuizTask(nil)
	if err != nil {
		log.Fatalf("Failed to create quiz task: %v", err)
	}

	// daily, early morning UTC, so packs exist before children wake up
	newsEntryID, err := scheduler.Register("0 4 * * *", newsTask, asynq.Queue("default"))
	if err != nil {
		log.Fatalf("Failed to register news task: %v", err)
	}
	log.Printf("Registered periodic task: %s (EntryID: %s)", newsTask.Type(), newsEntryID)

	// weekly; quiz packs have no expiry
	quizEntryID, err := scheduler.Register("0 5 * * 1", quizTask, asynq.Queue("default"))
	if err != nil {
		log.Fatalf("Failed to register quiz task: %v", err)
	}
	log.Printf("Registered periodic task: %s (EntryID: %s)", quizTask.Type(), quizEntryID)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
			},
			// Generator runs are long cross-products; one at a time is
			// enough and keeps overlapping runs from stacking up.
			Concurrency: 1,
		},
	)

	taskProcessor := tasks.NewTaskProcessor(dbConn, cfg, vision.NewAnalyzer(cfg.OpenAIAPIKey))

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeTaskGenerateNews, taskProcessor.HandleGenerateNewsTask)
	mux.HandleFunc(tasks.TypeTaskGenerateQuiz, taskProcessor.HandleGenerateQuizTask)

	go func() {
		log.Println("Starting Asynq scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("Could not run Asynq scheduler: %v", err)
		}
	}()

	go func() {
		log.Println("Starting Asynq worker server...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("Could not run Asynq worker server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("Shutdown signal received, shutting down gracefully...")

	scheduler.Shutdown()
	log.Println("Asynq scheduler shut down.")

	srv.Shutdown()
	log.Println("Asynq worker server shut down.")

	log.Println("Worker process shut down complete.")
}
