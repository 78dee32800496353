// Package category is the single source of truth for applicant role /
// question category labels. Question creation, submission intake and the
// shortlist sheet all normalize through this table, so the stored values
// never drift between surfaces.
package category

import "strings"

// Canonical category labels.
const (
	FullStack = "Full Stack Developer"
	Python    = "Python Developer"
	Backend   = "Backend Developer"
	Frontend  = "Frontend Developer"
	UIUX      = "UI/UX Designer"
)

// Canonical returns every canonical category label. Used by the categories
// listing endpoint so the admin UI can offer all categories even before any
// question exists for them.
func Canonical() []string {
	return []string{FullStack, Python, Backend, Frontend, UIUX}
}

// aliases maps lowercased free-text inputs to canonical labels.
var aliases = map[string]string{
	"full stack developer": FullStack,
	"full-stack developer": FullStack,
	"fullstack developer":  FullStack,
	"fullstack":            FullStack,
	"python developer":     Python,
	"python":               Python,
	"backend developer":    Backend,
	"backend":              Backend,
	"back-end":             Backend,
	"frontend developer":   Frontend,
	"frontend":             Frontend,
	"front-end":            Frontend,
	"ui/ux designer":       UIUX,
	"ui ux designer":       UIUX,
	"uiux designer":        UIUX,
	"ux designer":          UIUX,
	"ui designer":          UIUX,
	"ui/ux":                UIUX,
	"ui ux":                UIUX,
	"ux":                   UIUX,
	"ui":                   UIUX,
}

// Normalize maps a free-text category or applied-role string to its
// canonical label. Unrecognized input passes through trimmed, unchanged.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	if canonical, ok := aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}
