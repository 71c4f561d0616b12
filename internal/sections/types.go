// Package sections provides the profile section taxonomy, heading
// classification, and section-splitting logic used throughout the
// profile-optimizer system.
package sections

// SectionType identifies one named category of profile content.
type SectionType string

// Section constants define the closed set of supported profile sections.
const (
	SectionGeneral      SectionType = "general"
	SectionHeadline     SectionType = "headline"
	SectionAbout        SectionType = "about"
	SectionExperience   SectionType = "experience"
	SectionEducation    SectionType = "education"
	SectionLicenses     SectionType = "licenses-certifications"
	SectionSkills       SectionType = "skills"
	SectionProjects     SectionType = "projects"
	SectionPublications SectionType = "publications"
	SectionHonors       SectionType = "honors-awards"
	SectionVolunteering SectionType = "volunteer-experience"
)

// All returns every SectionType in declaration order.
func All() []SectionType {
	return []SectionType{
		SectionGeneral,
		SectionHeadline,
		SectionAbout,
		SectionExperience,
		SectionEducation,
		SectionLicenses,
		SectionSkills,
		SectionProjects,
		SectionPublications,
		SectionHonors,
		SectionVolunteering,
	}
}

// IsValid reports whether s is one of the known section types.
func IsValid(s SectionType) bool {
	for _, known := range All() {
		if s == known {
			return true
		}
	}
	return false
}

// displayNames maps section types to their human-readable form.
var displayNames = map[SectionType]string{
	SectionGeneral:      "General",
	SectionHeadline:     "Headline",
	SectionAbout:        "About",
	SectionExperience:   "Experience",
	SectionEducation:    "Education",
	SectionLicenses:     "Licenses & Certifications",
	SectionSkills:       "Skills",
	SectionProjects:     "Projects",
	SectionPublications: "Publications",
	SectionHonors:       "Honors & Awards",
	SectionVolunteering: "Volunteer Experience",
}

// DisplayName returns the human-readable name for a section type.
func (s SectionType) DisplayName() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

// EntriesMap maps a section to its detected entries in document order.
// Keys are present only for sections with at least one entry.
type EntriesMap map[SectionType][]string

// KeywordRow pairs a section type with the normalized keywords that
// identify its heading lines.
type KeywordRow struct {
	Section  SectionType
	Keywords []string
}

// KeywordTable is the ordered heading-keyword table. Order is load-bearing:
// the classifier returns the first section whose keyword set matches, so a
// line matching multiple sections resolves to the earliest row. Do not
// reorder or replace with a map.
var KeywordTable = []KeywordRow{
	{SectionHeadline, []string{"headline", "professional headline", "title"}},
	{SectionAbout, []string{"about", "about me", "summary", "professional summary", "profile", "overview"}},
	{SectionExperience, []string{"experience", "work experience", "professional experience", "employment", "employment history", "work history", "career history"}},
	{SectionEducation, []string{"education", "academic background", "academics"}},
	{SectionLicenses, []string{"licenses", "certifications", "licenses & certifications", "licenses and certifications", "certificates"}},
	{SectionSkills, []string{"skills", "top skills", "technical skills", "core competencies", "expertise"}},
	{SectionProjects, []string{"projects", "personal projects", "key projects"}},
	{SectionPublications, []string{"publications", "papers", "research publications"}},
	{SectionHonors, []string{"honors", "awards", "honors & awards", "honors and awards", "accomplishments", "achievements"}},
	{SectionVolunteering, []string{"volunteer", "volunteering", "volunteer experience", "community involvement"}},
}
