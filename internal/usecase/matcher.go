package usecase

import (
	"context"
	"fmt"
	"nenmatch/internal/domain/entity"
	"nenmatch/internal/domain/repository"
)

// Matcher finds the indexed player closest to a diagnosis.
type Matcher struct {
	index repository.PlayerIndex
}

// NewMatcher accepts a nil index; Match then reports ErrMatchingUnavailable.
func NewMatcher(index repository.PlayerIndex) *Matcher {
	return &Matcher{index: index}
}

// Match looks for the nearest player on the position that belongs to the
// diagnosis' primary category, then on any position.
func (m *Matcher) Match(ctx context.Context, d entity.Diagnosis) (*entity.PlayerMatch, error) {
	if m.index == nil {
		return nil, entity.ErrMatchingUnavailable
	}
	if !d.Primary.Valid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidCategory, d.Primary)
	}

	match, err := m.index.Nearest(ctx, d.Scores, entity.PositionFor(d.Primary))
	if err != nil {
		return nil, fmt.Errorf("player search failed: %w", err)
	}
	if match != nil {
		return match, nil
	}

	match, err = m.index.Nearest(ctx, d.Scores, "")
	if err != nil {
		return nil, fmt.Errorf("player search failed: %w", err)
	}
	return match, nil
}
