package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_PassThrough(t *testing.T) {
	out, err := RenderTemplate("no markers here", nil)
	require.NoError(t, err)
	assert.Equal(t, "no markers here", out)
}

func TestRenderTemplate_Substitution(t *testing.T) {
	out, err := RenderTemplate("Question: {{.Question}}\nHistory: {{.History}}", map[string]any{
		"Question": "What is the capital?",
		"History":  "none",
	})
	require.NoError(t, err)
	assert.Equal(t, "Question: What is the capital?\nHistory: none", out)
}

func TestRenderTemplate_InvalidTemplate(t *testing.T) {
	_, err := RenderTemplate("{{.Unclosed", nil)
	assert.Error(t, err)
}
