// Package optimizer orchestrates a single section optimization: resolve
// the content to send, call the model, validate and parse the response.
package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/profile-optimizer/internal/llm"
	"github.com/jonathan/profile-optimizer/internal/prompts"
	"github.com/jonathan/profile-optimizer/internal/schemas"
	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/types"
)

// MsgNoContent is shown when optimize is triggered with nothing to
// send; no model call is made in that case.
const MsgNoContent = "Nothing to optimize yet. Paste section content or extract it from a PDF or screenshot first."

// Request carries everything one optimization needs. Section tags the
// request: the result belongs to this section no matter what is active
// when the call completes.
type Request struct {
	Section         sections.SectionType
	EditableContent string
	// FullTextFallback is the complete extracted document, used when
	// the editable content is empty and the session is extraction-backed.
	FullTextFallback string
	SourceExtracted  bool
	JobDescription   string
}

// Outcome is what one optimization produced: a structured (possibly
// fallback) result, or a user-facing message when no result exists.
type Outcome struct {
	Section sections.SectionType
	Result  *types.StructuredResult
	Message string
}

// Optimizer runs optimizations against a model client.
type Optimizer struct {
	client llm.Client
}

// New creates an Optimizer backed by the given client.
func New(client llm.Client) *Optimizer {
	return &Optimizer{client: client}
}

// Optimize resolves the request's content, calls the model once, and
// returns either a structured result or a message. Failures are never
// retried here; the user re-triggers manually.
func (o *Optimizer) Optimize(ctx context.Context, req Request) Outcome {
	content := strings.TrimSpace(req.EditableContent)
	if content == "" && req.SourceExtracted {
		// A section without an explicit match can still be optimized
		// by letting the model search the whole document.
		content = strings.TrimSpace(req.FullTextFallback)
	}
	if content == "" {
		return Outcome{Section: req.Section, Message: MsgNoContent}
	}

	prompt, err := buildPrompt(req.Section, content, req.JobDescription)
	if err != nil {
		slog.Error("failed to build optimization prompt",
			"section", req.Section, "error", err)
		return Outcome{Section: req.Section, Message: "Internal error: missing prompt for this section."}
	}

	raw, err := o.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		kind := llm.ClassifyFailure(err)
		slog.Error("optimization call failed",
			"section", req.Section,
			"content_length", len(content),
			"failure_kind", kind,
			"error", err)
		return Outcome{Section: req.Section, Message: llm.FailureMessage(kind)}
	}

	cleaned := llm.CleanJSONBlock(raw)
	result := parseResponse(req.Section, cleaned)
	if result.IsFallback() {
		slog.Warn("optimization response failed validation, degrading to plain text",
			"section", req.Section, "content_length", len(cleaned))
	}
	return Outcome{Section: req.Section, Result: result}
}

// parseResponse validates the model's JSON against the section's schema
// and decodes it into the section's variant. Anything that does not
// conform becomes a flagged plain-text fallback carrying the raw
// payload, never an error.
func parseResponse(section sections.SectionType, cleaned string) *types.StructuredResult {
	if err := schemas.ValidateResult(section, cleaned); err != nil {
		return types.NewFallback(section, cleaned)
	}
	return types.ParseResult(section, cleaned)
}

// buildPrompt renders the section's optimize template with the resolved
// content and optional job description.
func buildPrompt(section sections.SectionType, content, jobDescription string) (string, error) {
	key := fmt.Sprintf("optimize-%s", section)
	template, err := prompts.Get("optimize.json", key)
	if err != nil {
		return "", err
	}

	jobContext := ""
	if strings.TrimSpace(jobDescription) != "" {
		jobContext = fmt.Sprintf("Target job description:\n\"\"\"\n%s\n\"\"\"\n", strings.TrimSpace(jobDescription))
	}

	return prompts.Format(template, map[string]string{
		"Content":    content,
		"JobContext": jobContext,
	}), nil
}
