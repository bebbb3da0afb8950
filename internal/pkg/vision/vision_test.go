package vision_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"wonderlens/internal/pkg/vision"
	"wonderlens/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openai/openai-go/v3/option"
)

func responsesBody(text string) string {
	encoded, err := json.Marshal(text)
	Expect(err).NotTo(HaveOccurred())

	return fmt.Sprintf(`{
		"id": "resp_test",
		"object": "response",
		"created_at": 1700000000,
		"status": "completed",
		"model": "gpt-4o-mini",
		"output": [
			{
				"type": "message",
				"id": "msg_test",
				"status": "completed",
				"role": "assistant",
				"content": [
					{"type": "output_text", "text": %s, "annotations": []}
				]
			}
		]
	}`, encoded)
}

var _ = Describe("Analyzer", func() {
	var analyzer *vision.Analyzer

	BeforeEach(func() {
		testhelpers.Activate()
		// Route the SDK through http.DefaultClient so the transport mock
		// sees its calls.
		analyzer = vision.NewAnalyzer("test-key", option.WithHTTPClient(http.DefaultClient), option.WithMaxRetries(0))
	})

	AfterEach(func() {
		testhelpers.Deactivate()
	})

	Describe("AnalyzeObject", func() {
		It("returns the parsed lens payload", func() {
			testhelpers.New("https://api.openai.com").
				Post("/v1/responses").
				Reply(200).
				Header("Content-Type", "application/json").
				BodyString(responsesBody(`{"object":"maple leaf","emoji":"🍁","lenses":[]}`))

			payload, err := analyzer.AnalyzeObject(context.Background(), "aGVsbG8=", 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(payload).To(MatchJSON(`{"object":"maple leaf","emoji":"🍁","lenses":[]}`))
			Expect(testhelpers.IsDone()).To(BeTrue())
		})

		It("recovers JSON the model wrapped in a code fence", func() {
			testhelpers.New("https://api.openai.com").
				Post("/v1/responses").
				Reply(200).
				Header("Content-Type", "application/json").
				BodyString(responsesBody("```json\n{\"object\":\"rock\"}\n```"))

			payload, err := analyzer.AnalyzeObject(context.Background(), "aGVsbG8=", 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(payload).To(MatchJSON(`{"object":"rock"}`))
		})

		It("substitutes the parse-error payload instead of failing", func() {
			testhelpers.New("https://api.openai.com").
				Post("/v1/responses").
				Reply(200).
				Header("Content-Type", "application/json").
				BodyString(responsesBody("I would rather chat about something else."))

			payload, err := analyzer.AnalyzeObject(context.Background(), "aGVsbG8=", 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(payload).To(MatchJSON(`{"error":"Could not parse response"}`))
		})

		It("surfaces API failures as errors", func() {
			testhelpers.New("https://api.openai.com").
				Post("/v1/responses").
				Reply(500).
				BodyString(`{"error":{"message":"boom"}}`)

			_, err := analyzer.AnalyzeObject(context.Background(), "aGVsbG8=", 8)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GenerateNews", func() {
		It("parses the generated stories", func() {
			testhelpers.New("https://api.openai.com").
				Post("/v1/responses").
				Reply(200).
				Header("Content-Type", "application/json").
				BodyString(responsesBody(`{"stories":[{"category":"space","headline":"New comet spotted","body":"A bright comet is visiting."}]}`))

			payload, err := analyzer.GenerateNews(context.Background(), "global", "6-7")
			Expect(err).NotTo(HaveOccurred())

			var content vision.NewsContent
			Expect(json.Unmarshal(payload, &content)).To(Succeed())
			Expect(content.Stories).To(HaveLen(1))
			Expect(content.Stories[0].Category).To(Equal("space"))
		})

		It("rejects unparseable output so the generator can skip the combination", func() {
			testhelpers.New("https://api.openai.com").
				Post("/v1/responses").
				Reply(200).
				Header("Content-Type", "application/json").
				BodyString(responsesBody("no json here"))

			_, err := analyzer.GenerateNews(context.Background(), "global", "6-7")
			Expect(err).To(MatchError(vision.ErrParse))
		})
	})

	Describe("GenerateQuiz", func() {
		It("parses the generated questions", func() {
			testhelpers.New("https://api.openai.com").
				Post("/v1/responses").
				Reply(200).
				Header("Content-Type", "application/json").
				BodyString(responsesBody(`{"category":"Animals","questions":[{"question":"How many legs does a spider have?","options":["6","8","10","12"],"correct":1,"explanation":"Spiders have eight legs."}]}`))

			payload, err := analyzer.GenerateQuiz(context.Background(), "Animals", "8-9")
			Expect(err).NotTo(HaveOccurred())

			var content vision.QuizContent
			Expect(json.Unmarshal(payload, &content)).To(Succeed())
			Expect(content.Questions).To(HaveLen(1))
			Expect(content.Questions[0].Correct).To(Equal(1))
		})
	})
})
