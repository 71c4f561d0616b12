package vision

import (
	"context"
	"fmt"

	"github.com/jonathan/profile-optimizer/internal/llm"
	"github.com/jonathan/profile-optimizer/internal/prompts"
	"github.com/jonathan/profile-optimizer/internal/sections"
)

// Capture is a screenshot of the currently visible profile area.
type Capture struct {
	// ImageDataURL holds the screenshot as a data URL
	// (data:image/png;base64,...), the form the vision model accepts.
	ImageDataURL string
}

// Capturer produces screenshots of the profile being edited. The
// browser side implements this; tests substitute a canned capture.
type Capturer interface {
	CaptureVisibleTab(ctx context.Context) (*Capture, error)
}

// Analyzer extracts per-section profile text from screenshots.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer creates an Analyzer backed by the given model client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze sends the screenshot to the vision model and returns the
// recognized sections with their visible text. The model's raw output
// is normalized before it reaches the caller, so an error here means
// the screenshot produced nothing usable.
func (a *Analyzer) Analyze(ctx context.Context, capture *Capture) (sections.EntriesMap, error) {
	if capture == nil || capture.ImageDataURL == "" {
		return nil, &AnalysisError{Message: "no screenshot to analyze"}
	}

	prompt, err := prompts.Get("vision.json", "analyze-screenshot")
	if err != nil {
		return nil, &AnalysisError{Message: "failed to load vision prompt", Cause: err}
	}

	raw, err := a.client.AnalyzeImage(ctx, capture.ImageDataURL, prompt, llm.TierStandard)
	if err != nil {
		return nil, &AnalysisError{Message: "vision model call failed", Cause: err}
	}

	entries, err := ParseAndNormalize(llm.CleanJSONBlock(raw))
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// AnalysisError reports a failed screenshot analysis.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vision analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("vision analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NoContentError reports an analysis whose payload contained no usable
// section content. KeyCount is how many keys the model returned before
// normalization discarded them.
type NoContentError struct {
	KeyCount int
}

func (e *NoContentError) Error() string {
	return fmt.Sprintf("vision analysis produced no usable section content (%d keys in payload)", e.KeyCount)
}
