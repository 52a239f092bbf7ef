package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFence_JSONFence(t *testing.T) {
	input := "```json\n{\"title\": \"Test\"}\n```"

	assert.Equal(t, `{"title": "Test"}`, StripFence(input))
}

func TestStripFence_BareFence(t *testing.T) {
	input := "```\n{\"title\": \"Test\"}\n```"

	assert.Equal(t, `{"title": "Test"}`, StripFence(input))
}

func TestStripFence_NoFence(t *testing.T) {
	input := "  {\"title\": \"Test\"}  "

	assert.Equal(t, `{"title": "Test"}`, StripFence(input))
}

func TestStripFence_MissingCloser(t *testing.T) {
	input := "```json\n{\"title\": \"Test\"}"

	assert.Equal(t, `{"title": "Test"}`, StripFence(input))
}

func TestStripFence_SurroundingWhitespace(t *testing.T) {
	input := "\n\n```json\n{\"a\": 1}\n```\n\n"

	assert.Equal(t, `{"a": 1}`, StripFence(input))
}

func TestStripFence_NestedFences(t *testing.T) {
	input := "```\n```json\n{\"a\": 1}\n```\n```"

	assert.Equal(t, `{"a": 1}`, StripFence(input))
}

func TestStripFence_ProseIsLeftAlone(t *testing.T) {
	input := "Here is the JSON you asked for"

	assert.Equal(t, input, StripFence(input))
}

func TestStripFence_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"```\n{\"a\": 1}\n```",
		"{\"a\": 1}",
		"```json\n{\"a\": 1}",
		"```\n```json\n{\"a\": 1}\n```\n```",
		"",
		"```",
		"```json",
	}

	for _, input := range inputs {
		once := StripFence(input)
		assert.Equal(t, once, StripFence(once), "input %q", input)
	}
}

func TestStripFence_EmptyFence(t *testing.T) {
	assert.Equal(t, "", StripFence("```json\n```"))
	assert.Equal(t, "", StripFence("```json"))
	assert.Equal(t, "", StripFence("```"))
}
