package vision

// Lens is one named explanatory facet of the content returned for a scanned
// object.
type Lens struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ObjectContent is the normal five-lens shape the model returns for a
// recognized, age-appropriate object.
type ObjectContent struct {
	Object string `json:"object"`
	Emoji  string `json:"emoji"`
	Lenses []Lens `json:"lenses"`
}

// SentinelContent is the fixed refusal shape returned when the safety gate
// triggers. The message text is part of the client contract.
type SentinelContent struct {
	Object  string `json:"object"`
	Message string `json:"message"`
}

// NewsStory is one headline inside a generated daily news pack.
type NewsStory struct {
	Category string `json:"category"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// NewsContent is the blob the news generator stores per
// (date, country, age band) combination.
type NewsContent struct {
	Stories []NewsStory `json:"stories"`
}

// QuizQuestion is one question inside a generated quiz pack.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// QuizContent is the blob the quiz generator stores per
// (category, age band) combination.
type QuizContent struct {
	Category  string         `json:"category"`
	Questions []QuizQuestion `json:"questions"`
}
