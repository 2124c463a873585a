package alert

import (
	"strings"

	"github.com/mas-patas/patitas/internal/domain"
)

// Engine decides whether a saved search matches a newly published report.
// Every criterion is optional; an empty criterion matches everything, so a
// saved search with no criteria at all matches every report.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Matches applies the search criteria in cheapest-first order: species is a
// single comparison, statuses a membership test, keywords a substring scan
// over the report's text fields. All set criteria must hold.
func (e *Engine) Matches(search *domain.SavedSearch, report *domain.Report) bool {
	if !search.Enabled {
		return false
	}

	if search.Species != "" && search.Species != report.Species {
		return false
	}

	if len(search.Statuses) > 0 && !containsStatus(search.Statuses, report.Status) {
		return false
	}

	if len(search.Keywords) > 0 {
		haystack := strings.ToLower(strings.Join([]string{
			report.Name,
			report.Breed,
			report.Color,
			report.Description,
		}, " "))

		for _, kw := range search.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if !strings.Contains(haystack, kw) {
				return false
			}
		}
	}

	return true
}

func containsStatus(statuses []domain.Status, s domain.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
