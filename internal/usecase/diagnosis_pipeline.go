package usecase

import (
	"context"
	"nenmatch/internal/domain/entity"
	"nenmatch/internal/domain/repository"

	"go.uber.org/zap"
)

// DiagnosisPipeline turns quiz answers or a profile into an affinity vector
// and a comment.
type DiagnosisPipeline struct {
	diagnoser repository.Diagnoser
	invoker   *ResilientInvoker
	logger    *zap.Logger
}

func NewDiagnosisPipeline(d repository.Diagnoser, inv *ResilientInvoker, logger *zap.Logger) *DiagnosisPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagnosisPipeline{diagnoser: d, invoker: inv, logger: logger.Named("diagnosis")}
}

// Diagnose asks the external model for a primary category and a specialist
// intensity, then expands them with Score. An unknown primary label is
// returned as entity.ErrInvalidCategory without retrying.
func (p *DiagnosisPipeline) Diagnose(ctx context.Context, in entity.DiagnosisInput) (*entity.Diagnosis, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	req := entity.DiagnosisRequest{Seed: ResolveSeed(nil), Input: in}

	raw, err := Invoke(ctx, p.invoker, "diagnosis", func(ctx context.Context) (*entity.PrimaryDiagnosis, error) {
		d, err := p.diagnoser.Diagnose(ctx, req)
		if err != nil || d == nil {
			return nil, err
		}
		if err := checkPayload(d); err != nil {
			return nil, err
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}

	primary := entity.Category(raw.Primary)
	scores, err := Score(primary, raw.SpecialistScore)
	if err != nil {
		p.logger.Error("model returned an unknown primary category",
			zap.String("primary", raw.Primary),
			zap.Int64("seed", req.Seed))
		return nil, err
	}

	p.logger.Info("diagnosis complete",
		zap.String("primary", raw.Primary),
		zap.Int("specialist_score", raw.SpecialistScore),
		zap.Ints("scores", scores[:]))

	return &entity.Diagnosis{
		Primary:         primary,
		SpecialistScore: raw.SpecialistScore,
		Scores:          scores,
		Comment:         raw.Reason,
	}, nil
}
