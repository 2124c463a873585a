package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/domain"
)

const excerptLimit = 140

// rank turns raw index rows into the final candidate list: deduplicated by
// report id (keeping the best similarity), scored as rounded percentages and
// sorted by score descending. The sort is stable, so rows with equal scores
// keep the index's own relevance order.
func rank(rows []domain.MatchRow) []domain.MatchCandidate {
	if len(rows) == 0 {
		return nil
	}

	// Complementary statuses are mutually exclusive per report, so the same
	// id should never arrive twice; dedup anyway in case that ever changes.
	seen := make(map[uuid.UUID]int, len(rows))
	deduped := rows[:0:0]
	for _, row := range rows {
		if i, ok := seen[row.ID]; ok {
			if row.Similarity > deduped[i].Similarity {
				deduped[i] = row
			}
			continue
		}
		seen[row.ID] = len(deduped)
		deduped = append(deduped, row)
	}

	candidates := make([]domain.MatchCandidate, 0, len(deduped))
	for _, row := range deduped {
		score := int(math.Round(row.Similarity * 100))
		candidates = append(candidates, domain.MatchCandidate{
			ReportID:    row.ID,
			Status:      row.Status,
			Name:        row.Name,
			Excerpt:     excerpt(row.Description),
			Images:      row.Images,
			Score:       score,
			Explanation: explain(row.Status, score),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

func excerpt(description string) string {
	runes := []rune(description)
	if len(runes) <= excerptLimit {
		return description
	}
	return string(runes[:excerptLimit]) + "..."
}

func explain(status domain.Status, score int) string {
	var label string
	switch status {
	case domain.StatusLost:
		label = "lost-pet"
	case domain.StatusFound:
		label = "found-pet"
	case domain.StatusSighted:
		label = "sighting"
	default:
		label = string(status)
	}
	return fmt.Sprintf("This %s report is a %d%% match for the animal profile you described.", label, score)
}
