package api

import (
	"context"
	"errors"
	"fmt"
	"nenmatch/internal/domain/entity"
	"nenmatch/internal/usecase"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuizHandler struct {
	quiz      *usecase.QuizPipeline
	diagnosis *usecase.DiagnosisPipeline
	matcher   *usecase.Matcher
	timeout   time.Duration
	logger    *zap.Logger
}

func NewQuizHandler(q *usecase.QuizPipeline, d *usecase.DiagnosisPipeline, m *usecase.Matcher, timeout time.Duration, logger *zap.Logger) *QuizHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizHandler{quiz: q, diagnosis: d, matcher: m, timeout: timeout, logger: logger.Named("api")}
}

// requestContext bounds a whole pipeline call, every retry included.
func (h *QuizHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func (h *QuizHandler) HandleGenerateQuiz(c *fiber.Ctx) error {
	var seed *int64
	if raw := c.Query("seed"); raw != "" {
		s, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return h.fail(c, entity.ErrInvalidRequest)
		}
		seed = &s
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	quiz, err := h.quiz.Generate(ctx, seed)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(quiz)
}

func (h *QuizHandler) HandleDiagnoseAnswers(c *fiber.Ctx) error {
	var body struct {
		QuestionAnswers []entity.QuestionAnswer `json:"question_answers"`
	}
	if err := c.BodyParser(&body); err != nil {
		return h.fail(c, entity.ErrInvalidRequest)
	}
	return h.diagnose(c, entity.DiagnosisInput{Answers: body.QuestionAnswers})
}

func (h *QuizHandler) HandleDiagnoseProfile(c *fiber.Ctx) error {
	var profile entity.PlayerProfile
	if err := c.BodyParser(&profile); err != nil {
		return h.fail(c, entity.ErrInvalidRequest)
	}
	return h.diagnose(c, entity.DiagnosisInput{Profile: &profile})
}

func (h *QuizHandler) diagnose(c *fiber.Ctx, in entity.DiagnosisInput) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	d, err := h.diagnosis.Diagnose(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(d)
}

type scoreRequest struct {
	Primary         string `json:"primary"`
	SpecialistScore *int   `json:"specialist_score"`
}

// parseScore reads a primary/specialist pair and expands it into a diagnosis
// without calling the model.
func parseScore(c *fiber.Ctx) (entity.Diagnosis, error) {
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil || req.SpecialistScore == nil {
		return entity.Diagnosis{}, entity.ErrInvalidRequest
	}
	intensity := *req.SpecialistScore
	if intensity < 0 || intensity > 100 {
		return entity.Diagnosis{}, fmt.Errorf("%w: specialist_score must be within 0-100", entity.ErrInvalidRequest)
	}

	primary := entity.Category(req.Primary)
	scores, err := usecase.Score(primary, intensity)
	if err != nil {
		return entity.Diagnosis{}, clientError(err)
	}
	return entity.Diagnosis{Primary: primary, SpecialistScore: intensity, Scores: scores}, nil
}

// HandleScore exposes the affinity scorer directly for callers that already
// hold a primary category and specialist score.
func (h *QuizHandler) HandleScore(c *fiber.Ctx) error {
	d, err := parseScore(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"scores": d.Scores})
}

func (h *QuizHandler) HandleMatch(c *fiber.Ctx) error {
	d, err := parseScore(c)
	if err != nil {
		return h.fail(c, err)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	match, err := h.matcher.Match(ctx, d)
	if err != nil {
		return h.fail(c, err)
	}
	if match == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no player indexed"})
	}
	return c.Status(fiber.StatusOK).JSON(match)
}

// clientError marks an error caused by caller-supplied values.
func clientError(err error) error {
	return fmt.Errorf("%w: %v", entity.ErrInvalidRequest, err)
}

// fail maps domain error kinds to HTTP status codes.
func (h *QuizHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, entity.ErrRateLimitExceeded):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidCategory):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, entity.ErrGenerationExhausted):
		h.logger.Error("generation failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "generation failed, please retry"})
	case errors.Is(err, entity.ErrMatchingUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
