package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/profile-optimizer/internal/optimizer"
	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/session"
	"github.com/jonathan/profile-optimizer/internal/types"
	"github.com/jonathan/profile-optimizer/internal/vision"
)

// Handlers implements the session-facing endpoints.
type Handlers struct {
	session        *session.Session
	optimizer      *optimizer.Optimizer
	analyzer       *vision.Analyzer
	jobDescription string
	validator      *validator.Validate
}

// NewHandlers wires the endpoint handlers to their collaborators.
func NewHandlers(sess *session.Session, opt *optimizer.Optimizer, analyzer *vision.Analyzer, jobDescription string) *Handlers {
	return &Handlers{
		session:        sess,
		optimizer:      opt,
		analyzer:       analyzer,
		jobDescription: jobDescription,
		validator:      validator.New(),
	}
}

// SessionView is the wire form of the active session state.
type SessionView struct {
	CurrentSection sections.SectionType    `json:"current_section"`
	Mode           session.InputMode       `json:"mode"`
	Source         session.Source          `json:"source"`
	Editable       string                  `json:"editable_content"`
	Status         string                  `json:"status,omitempty"`
	ActiveResult   *types.StructuredResult `json:"active_result,omitempty"`
	Sections       []SectionView           `json:"sections"`
}

// SectionView summarizes one section's entries for selector UIs.
type SectionView struct {
	Section       sections.SectionType `json:"section"`
	DisplayName   string               `json:"display_name"`
	EntryPreviews []string             `json:"entry_previews"`
	SelectedEntry int                  `json:"selected_entry"`
	HasCached     bool                 `json:"has_cached_result"`
}

// sessionView renders the wire form from a snapshot so the view is
// consistent even while other requests mutate the session.
func (h *Handlers) sessionView() SessionView {
	snap := h.session.Snapshot()

	view := SessionView{
		CurrentSection: snap.CurrentSection,
		Mode:           snap.Mode,
		Source:         snap.Source,
		Editable:       snap.Editable,
		Status:         snap.Status,
		ActiveResult:   snap.ActiveResult,
	}

	for _, section := range sections.All() {
		entries := snap.Entries[section]
		_, cached := snap.Cache[section]
		if len(entries) == 0 && !cached {
			continue
		}

		previews := make([]string, 0, len(entries))
		for _, entry := range entries {
			previews = append(previews, sections.Preview(section, entry))
		}

		view.Sections = append(view.Sections, SectionView{
			Section:       section,
			DisplayName:   section.DisplayName(),
			EntryPreviews: previews,
			SelectedEntry: snap.EntryIndex[section],
			HasCached:     cached,
		})
	}

	return view
}

// GetSession returns the current session state.
func (h *Handlers) GetSession(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, h.sessionView())
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			errorResponse(w, http.StatusBadRequest, "invalid field: "+validationErrors[0].Field())
			return false
		}
		errorResponse(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

type selectSectionRequest struct {
	Section string `json:"section" validate:"required"`
}

// SelectSection switches the active section.
func (h *Handlers) SelectSection(w http.ResponseWriter, r *http.Request) {
	var req selectSectionRequest
	if !h.decode(w, r, &req) {
		return
	}

	section := sections.SectionType(req.Section)
	if !sections.IsValid(section) {
		errorResponse(w, http.StatusBadRequest, "unknown section: "+req.Section)
		return
	}

	h.session.SelectSection(section)
	jsonResponse(w, http.StatusOK, h.sessionView())
}

type selectEntryRequest struct {
	Section string `json:"section" validate:"required"`
	Index   *int   `json:"index" validate:"required"`
}

// SelectEntry picks an entry within a section. Out-of-bounds picks are
// ignored and the unchanged state is returned.
func (h *Handlers) SelectEntry(w http.ResponseWriter, r *http.Request) {
	var req selectEntryRequest
	if !h.decode(w, r, &req) {
		return
	}

	section := sections.SectionType(req.Section)
	if !sections.IsValid(section) {
		errorResponse(w, http.StatusBadRequest, "unknown section: "+req.Section)
		return
	}

	h.session.SelectEntry(section, *req.Index)
	jsonResponse(w, http.StatusOK, h.sessionView())
}

type setModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=manual pdf screenshot"`
}

// SetInputMode resets the session for a new content source.
func (h *Handlers) SetInputMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.session.SetInputMode(session.InputMode(req.Mode))
	jsonResponse(w, http.StatusOK, h.sessionView())
}

type setContentRequest struct {
	Content string `json:"content"`
}

// SetContent replaces the editable content.
func (h *Handlers) SetContent(w http.ResponseWriter, r *http.Request) {
	var req setContentRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.session.SetEditable(req.Content)
	jsonResponse(w, http.StatusOK, h.sessionView())
}

type extractTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractText splits submitted document text into sections and applies
// it to the session. A text in which no section is recognized leaves
// the session untouched.
func (h *Handlers) ExtractText(w http.ResponseWriter, r *http.Request) {
	var req extractTextRequest
	if !h.decode(w, r, &req) {
		return
	}

	entries := sections.Split(req.Text)
	if len(entries) == 0 {
		errorResponse(w, http.StatusUnprocessableEntity, "no sections recognized in the submitted text")
		return
	}

	h.session.ApplyExtraction(entries, req.Text)
	jsonResponse(w, http.StatusOK, h.sessionView())
}

type analyzeScreenshotRequest struct {
	ImageDataURL string `json:"image_data_url" validate:"required"`
}

// AnalyzeScreenshot runs the vision pipeline over a screenshot and
// applies the recognized sections to the session.
func (h *Handlers) AnalyzeScreenshot(w http.ResponseWriter, r *http.Request) {
	var req analyzeScreenshotRequest
	if !h.decode(w, r, &req) {
		return
	}

	entries, err := h.analyzer.Analyze(r.Context(), &vision.Capture{ImageDataURL: req.ImageDataURL})
	if err != nil {
		var noContent *vision.NoContentError
		if errors.As(err, &noContent) {
			errorResponse(w, http.StatusUnprocessableEntity, "no usable profile content found in the screenshot")
			return
		}
		errorResponse(w, http.StatusBadGateway, "screenshot analysis failed")
		return
	}

	fullText := ""
	for _, list := range entries {
		for _, entry := range list {
			if fullText != "" {
				fullText += "\n\n"
			}
			fullText += entry
		}
	}

	h.session.ApplyExtraction(entries, fullText)
	jsonResponse(w, http.StatusOK, h.sessionView())
}

type optimizeRequest struct {
	Section        string `json:"section"`
	JobDescription string `json:"job_description"`
}

// OptimizeResponse carries the outcome of one optimization.
type OptimizeResponse struct {
	Section sections.SectionType    `json:"section"`
	Result  *types.StructuredResult `json:"result,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// Optimize runs one optimization for the requested (or active) section.
// The result is cached for the section it was requested for, even if
// the active section changes while the call is in flight.
func (h *Handlers) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap := h.session.Snapshot()

	section := snap.CurrentSection
	if req.Section != "" {
		section = sections.SectionType(req.Section)
		if !sections.IsValid(section) {
			errorResponse(w, http.StatusBadRequest, "unknown section: "+req.Section)
			return
		}
	}

	jobDescription := req.JobDescription
	if jobDescription == "" {
		jobDescription = h.jobDescription
	}

	editable := snap.Editable
	if section != snap.CurrentSection {
		// Optimizing a non-active section sends that section's selected
		// entry, not whatever is in the editor.
		editable = ""
		if entries := snap.Entries[section]; len(entries) > 0 {
			idx := snap.EntryIndex[section]
			if idx < 0 || idx >= len(entries) {
				idx = 0
			}
			editable = entries[idx]
		}
	}

	outcome := h.optimizer.Optimize(r.Context(), optimizer.Request{
		Section:          section,
		EditableContent:  editable,
		FullTextFallback: snap.FullText,
		SourceExtracted:  snap.Source == session.SourceExtracted,
		JobDescription:   jobDescription,
	})

	if outcome.Result == nil {
		kind := session.StatusError
		if outcome.Message == optimizer.MsgNoContent {
			kind = session.StatusInfo
		}
		h.session.SetStatus(outcome.Message, kind)
		jsonResponse(w, http.StatusOK, OptimizeResponse{Section: section, Message: outcome.Message})
		return
	}

	h.session.StoreResult(section, outcome.Result)
	jsonResponse(w, http.StatusOK, OptimizeResponse{Section: section, Result: outcome.Result})
}
