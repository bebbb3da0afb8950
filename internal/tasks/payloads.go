package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// This file defines the "types" and "payloads" for our async tasks.

// Task type names
const (
	TypeTaskGenerateNews = "task:generate_kidnews"
	TypeTaskGenerateQuiz = "task:generate_quiz"
)

// GenerateNewsPayload optionally pins the generation date (YYYY-MM-DD);
// scheduled runs leave it nil and use today.
type GenerateNewsPayload struct {
	Date *string `json:"date"`
}

// GenerateQuizPayload optionally restricts the run to one category.
type GenerateQuizPayload struct {
	Category *string `json:"category"`
}

// NewGenerateNewsTask creates a new task for asynq
func NewGenerateNewsTask(date *string) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(GenerateNewsPayload{Date: date})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTaskGenerateNews, payloadBytes), nil
}

// NewGenerateQuizTask creates a new task for asynq
func NewGenerateQuizTask(category *string) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(GenerateQuizPayload{Category: category})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTaskGenerateQuiz, payloadBytes), nil
}
