// Package session owns the live editing state: which section and entry
// are active, what content is being edited, and which optimization
// results are cached where.
package session

import (
	"log/slog"
	"sync"

	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/types"
)

// InputMode is the ground-truth source of profile content.
type InputMode string

const (
	ModeManual     InputMode = "manual"
	ModePDF        InputMode = "pdf"
	ModeScreenshot InputMode = "screenshot"
)

// Source records whether the editable content was typed by hand or
// derived from an extraction.
type Source string

const (
	SourceManual    Source = "manual"
	SourceExtracted Source = "extracted"
)

// StatusKind classifies the transient status line so transitions know
// which messages they may overwrite.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusInfo    StatusKind = "info"
	StatusWaiting StatusKind = "waiting"
	StatusError   StatusKind = "error"
)

// Status messages produced by state transitions.
const (
	msgSectionChanged   = "Section changed. Run optimization again for updated suggestions."
	msgNoSectionContent = "No content found for this section."
	msgManualMode       = "Manual mode: paste the content you want to optimize."
	msgPDFMode          = "PDF mode: upload a profile export to split into sections."
	msgScreenshotMode   = "Screenshot mode: capture the visible profile to analyze."
)

// Session is the single source of truth for the active editing state.
// Transitions mutate it in place and schedule a persistence write via
// the injected hook; nothing here performs I/O directly.
//
// Every transition runs under mu, so each one is atomic with respect to
// the others. Concurrent readers (handlers, the persister) must go
// through Snapshot rather than touching fields directly.
type Session struct {
	mu sync.Mutex

	CurrentSection sections.SectionType
	Entries        sections.EntriesMap
	EntryIndex     map[sections.SectionType]int
	Cache          map[sections.SectionType]*types.StructuredResult
	Editable       string
	FullText       string
	Source         Source
	Mode           InputMode
	ActiveResult   *types.StructuredResult
	Status         string
	StatusKind     StatusKind

	// persist is invoked after every mutation. It is expected to be
	// debounced and fire-and-forget; a nil hook disables persistence.
	persist func()
}

// New returns an empty manual-mode session.
func New() *Session {
	return &Session{
		CurrentSection: sections.SectionGeneral,
		Entries:        make(sections.EntriesMap),
		EntryIndex:     make(map[sections.SectionType]int),
		Cache:          make(map[sections.SectionType]*types.StructuredResult),
		Source:         SourceManual,
		Mode:           ModeManual,
	}
}

// SetPersistHook installs the function called after each mutation.
func (s *Session) SetPersistHook(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist = hook
}

func (s *Session) persistLater() {
	if s.persist != nil {
		s.persist()
	}
}

// SelectSection switches the active section. Cached results are
// restored as-is; nothing outside the active pointers and the status
// line is mutated.
func (s *Session) SelectSection(section sections.SectionType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectSection(section)
}

func (s *Session) selectSection(section sections.SectionType) {
	s.CurrentSection = section

	cached, hasCached := s.Cache[section]
	if hasCached {
		s.ActiveResult = cached
		s.setStatus("", StatusNone)
	} else {
		s.ActiveResult = nil
		if s.Status != "" && s.StatusKind != StatusWaiting && s.StatusKind != StatusInfo {
			s.setStatus(msgSectionChanged, StatusInfo)
		}
	}

	if s.Source == SourceExtracted {
		entries := s.Entries[section]
		if len(entries) > 0 {
			idx := clamp(s.EntryIndex[section], len(entries))
			s.EntryIndex[section] = idx
			s.Editable = entries[idx]
		} else {
			s.Editable = ""
			if !hasCached {
				s.setStatus(msgNoSectionContent, StatusInfo)
			}
		}
	}

	s.persistLater()
}

// SelectEntry picks entry i within section. Out-of-bounds selections
// are ignored. Cache and active result are untouched.
func (s *Session) SelectEntry(section sections.SectionType, i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.Entries[section]
	if len(entries) == 0 || i < 0 || i >= len(entries) {
		return
	}

	s.EntryIndex[section] = i
	s.Editable = entries[i]
	s.persistLater()
}

// ApplyExtraction replaces the section entries wholesale with a fresh
// extraction. Cached optimization results survive: a result computed
// for a section this extraction did not touch is still valid.
func (s *Session) ApplyExtraction(entries sections.EntriesMap, fullText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Entries = entries
	s.EntryIndex = make(map[sections.SectionType]int, len(entries))
	for section := range entries {
		s.EntryIndex[section] = 0
	}
	s.FullText = fullText
	s.Source = SourceExtracted

	if list := entries[s.CurrentSection]; len(list) > 0 {
		s.Editable = list[0]
	} else if detected, ok := detectSection(entries); ok {
		slog.Debug("current section missing from extraction, switching",
			"from", s.CurrentSection, "to", detected)
		s.selectSection(detected)
		return
	} else {
		s.Editable = ""
	}

	s.persistLater()
}

// SetInputMode resets the session for a new ground-truth source. This
// is the one transition that discards the optimization cache.
func (s *Session) SetInputMode(mode InputMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Mode = mode
	s.Editable = ""
	s.FullText = ""
	s.Source = SourceManual
	s.Entries = make(sections.EntriesMap)
	s.EntryIndex = make(map[sections.SectionType]int)
	s.Cache = make(map[sections.SectionType]*types.StructuredResult)
	s.ActiveResult = nil

	switch mode {
	case ModePDF:
		s.setStatus(msgPDFMode, StatusInfo)
	case ModeScreenshot:
		s.setStatus(msgScreenshotMode, StatusInfo)
	default:
		s.setStatus(msgManualMode, StatusInfo)
	}

	s.persistLater()
}

// StoreResult records an optimization result for the section it was
// requested for, regardless of which section is active now. A late
// completion after the user navigated away lands in its own cache slot
// and never touches the display of the current section.
func (s *Session) StoreResult(requested sections.SectionType, result *types.StructuredResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Cache[requested] = result
	if s.CurrentSection == requested {
		s.ActiveResult = result
		s.setStatus("", StatusNone)
	}
	s.persistLater()
}

// SetEditable replaces the editable content after a manual edit.
func (s *Session) SetEditable(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Editable = content
	s.persistLater()
}

// SetStatus surfaces a transient status line.
func (s *Session) SetStatus(message string, kind StatusKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setStatus(message, kind)
	s.persistLater()
}

func (s *Session) setStatus(message string, kind StatusKind) {
	s.Status = message
	s.StatusKind = kind
	if message == "" {
		s.StatusKind = StatusNone
	}
}

// detectSection picks a plausible section from a fresh extraction when
// the current one is absent: the earliest populated section in
// canonical order.
func detectSection(entries sections.EntriesMap) (sections.SectionType, bool) {
	for _, section := range sections.All() {
		if len(entries[section]) > 0 {
			return section, true
		}
	}
	return "", false
}

func clamp(i, length int) int {
	if i < 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}
