package vision

import (
	"fmt"
	"strings"
)

// SentinelMessage is the fixed refusal text the model must emit verbatim when
// the safety gate triggers.
const (
	SentinelObject  = "unrecognized"
	SentinelMessage = "Hmm, that's not something I can explore. Let's try scanning something else!"
)

// LensMenu is the closed menu of fourteen lenses the model selects from.
// "Core Identity" is always included; "Safety & Care" and "Ecosystem Role"
// have forced-inclusion rules spelled out in the prompt.
var LensMenu = []string{
	"Core Identity",
	"Safety & Care",
	"Ecosystem Role",
	"How It Works",
	"Fun Fact",
	"History & Origins",
	"Science Spotlight",
	"Numbers & Counting",
	"Word Wizard",
	"Around the World",
	"People & Culture",
	"Art & Imagination",
	"Future & Inventions",
	"Try It Yourself",
}

const (
	analyzeSystemPrompt = `You are WonderLens, a friendly educator for children aged 6 to 10.
You look at a photo a child has taken and explain the main object through
short educational "lenses". You only ever answer with a single valid JSON
object. No markdown, no code fences, no explanations outside the JSON.`

	generatorSystemPrompt = `You are WonderLens, a friendly educator for children aged 6 to 10.
You write short educational content for a children's app. You only ever answer
with a single valid JSON object. No markdown, no code fences, no explanations
outside the JSON.`

	analyzeSchema = `Output schema:
{
  "object": string,          // short name of the primary object
  "emoji": string,           // one emoji representing the object
  "lenses": [                // exactly 5 entries
    {
      "name": string,        // one of the lens names from the menu, verbatim
      "title": string,       // playful title for the card
      "content": string      // 2-4 sentences at the child's reading level
    }
  ]
}`

	analyzeSafetyGate = `Safety gate (applies before anything else):
If you are not at least 90%% confident the object is appropriate for a child
aged 6-10 (no weapons, alcohol, tobacco, drugs, adult content, or anything
frightening or dangerous to discuss with a child), respond with exactly:
{"object":"%s","message":"%s"}
and nothing else. Do not include a lenses field in that case.`
)

// BuildAnalyzePrompt constructs the user instruction for one object analysis.
// Lens selection rules, the safety gate and the reading level all ride on the
// prompt; none of them are enforced programmatically.
func BuildAnalyzePrompt(childAge int) string {
	builder := strings.Builder{}

	builder.WriteString("Identify the primary object in the attached photo.\n\n")
	builder.WriteString("Then pick exactly 5 lenses from this menu:\n")
	for _, lens := range LensMenu {
		builder.WriteString("- ")
		builder.WriteString(lens)
		builder.WriteString("\n")
	}
	builder.WriteString(`
Selection rules:
- "Core Identity" is always one of the 5.
- If the object can cause physical harm or needs looking after, "Safety & Care" must be one of the 5.
- If the object is a living thing or a natural element, "Ecosystem Role" must be one of the 5.
- Fill the remaining slots with the most relevant lenses for this object.

`)
	builder.WriteString(fmt.Sprintf("The child is %d years old. Tune vocabulary and sentence length to that age.\n\n", childAge))
	builder.WriteString(fmt.Sprintf(analyzeSafetyGate, SentinelObject, SentinelMessage))
	builder.WriteString("\n\n")
	builder.WriteString(analyzeSchema)

	return builder.String()
}

// BuildNewsPrompt constructs the instruction for one daily news combination.
func BuildNewsPrompt(country, band string) string {
	region := "around the world"
	if country != "global" {
		region = fmt.Sprintf("relevant to children in the country with ISO code %q", strings.ToUpper(country))
	}

	return fmt.Sprintf(`Write a kid-safe daily news digest for children aged %s, %s.
Produce 5 short stories across different categories (science, nature, sports,
space, culture). Keep every story positive or neutral; no violence, politics,
disasters or anything frightening.

Respond with a single valid JSON object and nothing else:
{
  "stories": [
    {"category": string, "headline": string, "body": string}
  ]
}
Each body is 2-3 sentences at the reading level of a %s year old.`, band, region, band)
}

// BuildQuizPrompt constructs the instruction for one quiz combination.
func BuildQuizPrompt(category, band string) string {
	return fmt.Sprintf(`Write a quiz about %q for children aged %s.
Produce 5 multiple-choice questions. Keep the tone playful and the content
kid-safe.

Respond with a single valid JSON object and nothing else:
{
  "category": %q,
  "questions": [
    {
      "question": string,
      "options": [string, string, string, string],
      "correct": int,        // index into options
      "explanation": string  // one friendly sentence
    }
  ]
}`, category, band, category)
}
