package usecase

import (
	"fmt"
	"nenmatch/internal/domain/entity"
)

// distanceScores maps ring distance to affinity. Six slots on a ring give a
// maximum distance of 3.
var distanceScores = [...]int{100, 80, 60, 40}

// Score expands a primary category and an independent specialist intensity
// into a full affinity vector.
//
// The specialist slot always takes intensity as-is, even when primary is the
// specialist category itself. Intensity is not clamped; callers validate it.
func Score(primary entity.Category, intensity int) (entity.AffinityVector, error) {
	var scores entity.AffinityVector

	primaryIndex := primary.Index()
	if primaryIndex < 0 {
		return scores, fmt.Errorf("%w: %q", entity.ErrInvalidCategory, primary)
	}

	for i := range scores {
		if i == entity.SpecialistIndex {
			scores[i] = intensity
			continue
		}
		scores[i] = distanceScores[ringDistance(i, primaryIndex)]
	}
	return scores, nil
}

func ringDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, entity.CategoryCount-d)
}
