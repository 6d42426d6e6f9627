package summary

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	notesPolicyOnce sync.Once
	notesPolicy     *bluemonday.Policy
)

// sanitizeNotes strips everything but harmless inline markup from free-text
// fields before they are embedded in the summary HTML. Notes are typed by
// staff, but they regularly paste from emails and documents.
func sanitizeNotes(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(notesSanitizer().Sanitize(trimmed))
}

func notesSanitizer() *bluemonday.Policy {
	notesPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "br", "p", "ul", "ol", "li")
		notesPolicy = policy
	})
	return notesPolicy
}
