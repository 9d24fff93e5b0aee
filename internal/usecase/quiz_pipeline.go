package usecase

import (
	"context"
	"nenmatch/internal/domain/entity"
	"nenmatch/internal/domain/repository"

	"go.uber.org/zap"
)

// QuizPipeline generates a themed quiz, varying every request by seed.
type QuizPipeline struct {
	generator  repository.QuizGenerator
	invoker    *ResilientInvoker
	catalog    []string
	themeCount int
	logger     *zap.Logger
}

func NewQuizPipeline(gen repository.QuizGenerator, inv *ResilientInvoker, catalog []string, themeCount int, logger *zap.Logger) *QuizPipeline {
	if len(catalog) == 0 {
		catalog = DefaultThemeCatalog
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizPipeline{
		generator:  gen,
		invoker:    inv,
		catalog:    catalog,
		themeCount: themeCount,
		logger:     logger.Named("quiz"),
	}
}

// Generate builds a quiz. A nil seed draws a fresh one; the seed actually
// used is returned on the quiz and logged.
func (p *QuizPipeline) Generate(ctx context.Context, seed *int64) (*entity.Quiz, error) {
	selection := SelectThemes(seed, p.catalog, p.themeCount)
	p.logger.Info("generating quiz",
		zap.Int64("seed", selection.Seed),
		zap.Strings("themes", selection.Themes))

	req := entity.QuizRequest{Seed: selection.Seed, Themes: selection}

	quiz, err := Invoke(ctx, p.invoker, "quiz", func(ctx context.Context) (*entity.Quiz, error) {
		q, err := p.generator.GenerateQuiz(ctx, req)
		if err != nil || q == nil {
			return nil, err
		}
		if err := checkPayload(q); err != nil {
			return nil, err
		}
		return q, nil
	})
	if err != nil {
		return nil, err
	}

	quiz.Seed = selection.Seed
	quiz.Themes = selection.Themes
	return quiz, nil
}
