package usecase

import (
	"context"
	"fmt"
	"nenmatch/internal/domain/entity"
	"nenmatch/internal/domain/repository"

	"go.uber.org/zap"
)

// IndexReport summarises one batch indexing run.
type IndexReport struct {
	Indexed []entity.PlayerDiagnosis
	Skipped []int
	Failed  map[int]error
}

// PlayerIndexer diagnoses player profiles and stores them for matching.
type PlayerIndexer struct {
	pipeline *DiagnosisPipeline
	index    repository.PlayerIndex
	logger   *zap.Logger
}

func NewPlayerIndexer(p *DiagnosisPipeline, index repository.PlayerIndex, logger *zap.Logger) *PlayerIndexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlayerIndexer{pipeline: p, index: index, logger: logger.Named("indexer")}
}

// Index diagnoses every profile not yet in the index. A failing player is
// recorded in the report and does not stop the batch.
func (x *PlayerIndexer) Index(ctx context.Context, profiles []entity.PlayerProfile) (*IndexReport, error) {
	report := &IndexReport{Failed: make(map[int]error)}

	for i := range profiles {
		profile := profiles[i]
		if err := ctx.Err(); err != nil {
			return report, err
		}

		exists, err := x.index.Exists(ctx, profile.ID)
		if err != nil {
			return report, fmt.Errorf("checking player %d: %w", profile.ID, err)
		}
		if exists {
			report.Skipped = append(report.Skipped, profile.ID)
			continue
		}

		x.logger.Info("diagnosing player",
			zap.Int("player_id", profile.ID),
			zap.String("name", profile.Name),
			zap.String("position", profile.Position))

		d, err := x.pipeline.Diagnose(ctx, entity.DiagnosisInput{Profile: &profile})
		if err != nil {
			x.logger.Warn("player diagnosis failed", zap.Int("player_id", profile.ID), zap.Error(err))
			report.Failed[profile.ID] = err
			continue
		}

		pd := entity.PlayerDiagnosis{
			PlayerID:  profile.ID,
			Name:      profile.Name,
			Position:  profile.Position,
			Diagnosis: *d,
		}
		if err := x.index.Upsert(ctx, pd); err != nil {
			report.Failed[profile.ID] = fmt.Errorf("storing player: %w", err)
			continue
		}
		report.Indexed = append(report.Indexed, pd)
	}
	return report, nil
}
