package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-optimizer/internal/sections"
)

func TestGet(t *testing.T) {
	prompt, err := Get("optimize.json", "optimize-headline")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Content}}")
	assert.Contains(t, prompt, "{{.JobContext}}")
	assert.Contains(t, prompt, "options")
}

func TestGetMissing(t *testing.T) {
	_, err := Get("optimize.json", "no-such-key")
	assert.Error(t, err)

	_, err = Get("missing.json", "optimize-headline")
	assert.Error(t, err)
}

func TestEverySectionHasOptimizePrompt(t *testing.T) {
	for _, section := range sections.All() {
		_, err := Get("optimize.json", "optimize-"+string(section))
		assert.NoError(t, err, "missing optimize prompt for %s", section)
	}
}

func TestFormat(t *testing.T) {
	template := "Section {{.Section}}: {{.Content}}"
	got := Format(template, map[string]string{
		"Section": "skills",
		"Content": "Go, SQL",
	})
	assert.Equal(t, "Section skills: Go, SQL", got)
}

func TestFormatLeavesUnknownPlaceholders(t *testing.T) {
	got := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x {{.Unknown}}", got)
}

func TestVisionPromptDemandsJSON(t *testing.T) {
	prompt := MustGet("vision.json", "analyze-screenshot")
	assert.True(t, strings.Contains(prompt, "JSON object"))
}
