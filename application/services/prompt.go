// Package services holds the application services: mind map generation and
// persistence of saved maps.
package services

import "fmt"

// systemPrompt is the fixed instruction sent with every generation request.
// It is never influenced by user input; the user text rides only in the user
// message. Semantic constraints (counts, label length, output language) are
// enforced here because the service does not post-edit model content.
const systemPrompt = `You are an educational mind map generator. Extract key concepts from text and organize them hierarchically.

Output ONLY valid JSON in this exact format:
{
  "title": "Main Topic Title",
  "keywords": [
    {
      "text": "Main Concept 1",
      "level": 1,
      "children": [
        { "text": "Sub-concept 1.1", "level": 2 },
        { "text": "Sub-concept 1.2", "level": 2 }
      ]
    },
    {
      "text": "Main Concept 2",
      "level": 1,
      "children": []
    }
  ]
}

Rules:
- Title should be a concise summary (3-6 words)
- Extract 3-6 main concepts (level 1)
- Each main concept can have 0-4 sub-concepts (level 2)
- Keep keywords short and clear (1-4 words each)
- Respond in the same language as the input text
- Output ONLY the JSON, no explanations`

// BuildPrompt constructs the system/user message pair for a generation
// request. Pure function; the text arrives verbatim and untrimmed - input
// validation happens before this is called. The language is an open hint
// string, not a member of any fixed set.
func BuildPrompt(text, language string) (systemInstruction, userMessage string) {
	return systemPrompt, fmt.Sprintf("Language: %s\n\nText to analyze:\n%s", language, text)
}
