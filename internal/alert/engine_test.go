package alert

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mas-patas/patitas/internal/domain"
)

func publishedReport() *domain.Report {
	return &domain.Report{
		ID:          uuid.New(),
		Status:      domain.StatusFound,
		Species:     domain.SpeciesDog,
		Breed:       "Labrador Retriever",
		Color:       "chocolate brown",
		Name:        "Rocky",
		Description: "Friendly dog found near Parque Kennedy, red collar",
	}
}

func TestEngine_Matches(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name   string
		search domain.SavedSearch
		want   bool
	}{
		{
			name:   "no criteria matches everything",
			search: domain.SavedSearch{Enabled: true},
			want:   true,
		},
		{
			name:   "disabled search never matches",
			search: domain.SavedSearch{Enabled: false},
			want:   false,
		},
		{
			name:   "species exact match",
			search: domain.SavedSearch{Enabled: true, Species: domain.SpeciesDog},
			want:   true,
		},
		{
			name:   "species mismatch",
			search: domain.SavedSearch{Enabled: true, Species: domain.SpeciesCat},
			want:   false,
		},
		{
			name:   "status membership",
			search: domain.SavedSearch{Enabled: true, Statuses: []domain.Status{domain.StatusLost, domain.StatusFound}},
			want:   true,
		},
		{
			name:   "status not in set",
			search: domain.SavedSearch{Enabled: true, Statuses: []domain.Status{domain.StatusLost}},
			want:   false,
		},
		{
			name:   "keyword case-insensitive in breed",
			search: domain.SavedSearch{Enabled: true, Keywords: []string{"LABRADOR"}},
			want:   true,
		},
		{
			name:   "keyword in description",
			search: domain.SavedSearch{Enabled: true, Keywords: []string{"red collar"}},
			want:   true,
		},
		{
			name:   "all keywords must hit",
			search: domain.SavedSearch{Enabled: true, Keywords: []string{"labrador", "siamese"}},
			want:   false,
		},
		{
			name:   "blank keywords are ignored",
			search: domain.SavedSearch{Enabled: true, Keywords: []string{"  ", "rocky"}},
			want:   true,
		},
		{
			name: "all criteria together",
			search: domain.SavedSearch{
				Enabled:  true,
				Species:  domain.SpeciesDog,
				Statuses: []domain.Status{domain.StatusFound},
				Keywords: []string{"brown", "kennedy"},
			},
			want: true,
		},
		{
			name: "combined criteria fail on one",
			search: domain.SavedSearch{
				Enabled:  true,
				Species:  domain.SpeciesDog,
				Statuses: []domain.Status{domain.StatusFound},
				Keywords: []string{"brown", "black collar"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Matches(&tt.search, publishedReport())
			assert.Equal(t, tt.want, got)
		})
	}
}
