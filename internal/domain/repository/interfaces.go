package repository

import (
	"context"
	"nenmatch/internal/domain/entity"
)

// QuizGenerator is the external, nondeterministic quiz generation call.
// A nil quiz with a nil error means the model produced nothing usable.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req entity.QuizRequest) (*entity.Quiz, error)
}

// Diagnoser is the external call that picks a primary category and a
// specialist intensity. A nil result with a nil error means nothing usable.
type Diagnoser interface {
	Diagnose(ctx context.Context, req entity.DiagnosisRequest) (*entity.PrimaryDiagnosis, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

// PlayerIndex stores diagnosed players and finds the nearest one to an
// affinity vector.
type PlayerIndex interface {
	Exists(ctx context.Context, playerID int) (bool, error)
	Upsert(ctx context.Context, player entity.PlayerDiagnosis) error
	Nearest(ctx context.Context, vector entity.AffinityVector, position string) (*entity.PlayerMatch, error)
}
