package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-optimizer/internal/sections"
)

func TestReadDocumentPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.txt")
	require.NoError(t, os.WriteFile(path, []byte("About\nI build things."), 0o644))

	text, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "About\nI build things.", text)
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := readDocument(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestReadDocumentBadPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-pdf.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0o644))

	_, err := readDocument(path)
	assert.Error(t, err)
}

func TestOptimizeTargetsExplicitSection(t *testing.T) {
	optimizeAll = false
	optimizeSection = "experience"
	t.Cleanup(func() { optimizeSection = "" })

	targets, err := optimizeTargets(sections.EntriesMap{})
	require.NoError(t, err)
	assert.Equal(t, []sections.SectionType{sections.SectionExperience}, targets)
}

func TestOptimizeTargetsUnknownSection(t *testing.T) {
	optimizeAll = false
	optimizeSection = "sidebar"
	t.Cleanup(func() { optimizeSection = "" })

	_, err := optimizeTargets(sections.EntriesMap{})
	assert.Error(t, err)
}

func TestOptimizeTargetsAll(t *testing.T) {
	optimizeAll = true
	t.Cleanup(func() { optimizeAll = false })

	targets, err := optimizeTargets(sections.EntriesMap{
		sections.SectionSkills:     {"Go"},
		sections.SectionExperience: {"Job A"},
	})
	require.NoError(t, err)

	// Canonical order, populated sections only.
	assert.Equal(t, []sections.SectionType{sections.SectionExperience, sections.SectionSkills}, targets)
}
