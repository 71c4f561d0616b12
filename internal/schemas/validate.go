// Package schemas provides JSON Schema validation for structured
// optimization responses before they are decoded into typed results.
// Schemas are embedded at compile time, one per section variant.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/profile-optimizer/internal/sections"
)

//go:embed *.schema.json
var schemaFS embed.FS

// schemaFiles maps a section type to its embedded schema filename.
var schemaFiles = map[sections.SectionType]string{
	sections.SectionGeneral:      "general.schema.json",
	sections.SectionHeadline:     "headline.schema.json",
	sections.SectionAbout:        "about.schema.json",
	sections.SectionExperience:   "experience.schema.json",
	sections.SectionEducation:    "education.schema.json",
	sections.SectionLicenses:     "licenses.schema.json",
	sections.SectionSkills:       "skills.schema.json",
	sections.SectionProjects:     "projects.schema.json",
	sections.SectionPublications: "publications.schema.json",
	sections.SectionHonors:       "honors.schema.json",
	sections.SectionVolunteering: "volunteering.schema.json",
}

// compiled caches parsed schemas so each is compiled once.
var (
	compiled   = make(map[sections.SectionType]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError reports a schema mismatch with per-field messages.
type ValidationError struct {
	Section sections.SectionType
	Fields  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("response for %s does not match expected shape: %s",
		e.Section, strings.Join(e.Fields, "; "))
}

// ValidateResult checks a raw JSON payload against the schema for the
// expected section variant. A nil return means the payload is safe to
// decode into the section's typed result.
func ValidateResult(section sections.SectionType, jsonText string) error {
	schema, err := schemaFor(section)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return fmt.Errorf("schema validation for %s: %w", section, err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Section: section}
	for _, desc := range result.Errors() {
		ve.Fields = append(ve.Fields, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return ve
}

// schemaFor returns the compiled schema for a section, falling back to
// the general schema for unknown sections.
func schemaFor(section sections.SectionType) (*gojsonschema.Schema, error) {
	filename, ok := schemaFiles[section]
	if !ok {
		section = sections.SectionGeneral
		filename = schemaFiles[section]
	}

	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, exists := compiled[section]; exists {
		return schema, nil
	}

	data, err := schemaFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", filename, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", filename, err)
	}

	compiled[section] = schema
	return schema, nil
}
