package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nenmatch/internal/domain/entity"
	"nenmatch/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuizGenerator struct {
	quiz *entity.Quiz
	err  error
}

func (s stubQuizGenerator) GenerateQuiz(ctx context.Context, req entity.QuizRequest) (*entity.Quiz, error) {
	if s.quiz == nil {
		return nil, s.err
	}
	q := *s.quiz
	return &q, s.err
}

type stubDiagnoser struct {
	result *entity.PrimaryDiagnosis
	err    error
}

func (s stubDiagnoser) Diagnose(ctx context.Context, req entity.DiagnosisRequest) (*entity.PrimaryDiagnosis, error) {
	return s.result, s.err
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	return s.allowed, s.err
}

type stubIndex struct {
	match *entity.PlayerMatch
}

func (s stubIndex) Exists(ctx context.Context, playerID int) (bool, error)      { return false, nil }
func (s stubIndex) Upsert(ctx context.Context, p entity.PlayerDiagnosis) error { return nil }
func (s stubIndex) Nearest(ctx context.Context, v entity.AffinityVector, position string) (*entity.PlayerMatch, error) {
	return s.match, nil
}

func sampleQuiz() *entity.Quiz {
	q := &entity.Quiz{}
	for i := 0; i < entity.QuestionsPerQuiz; i++ {
		question := entity.Question{QuestionText: fmt.Sprintf("Q%d", i)}
		for j := 0; j < entity.ChoicesPerQuestion; j++ {
			question.Choices = append(question.Choices, entity.Choice{Text: "c", NenType: entity.Categories[j]})
		}
		q.Questions = append(q.Questions, question)
	}
	return q
}

type testDeps struct {
	quiz      stubQuizGenerator
	diagnoser stubDiagnoser
	index     *stubIndex
	limiter   *stubLimiter
}

func newTestApp(deps testDeps) *fiber.App {
	inv := usecase.NewResilientInvoker()
	var matcher *usecase.Matcher
	if deps.index != nil {
		matcher = usecase.NewMatcher(deps.index)
	} else {
		matcher = usecase.NewMatcher(nil)
	}
	h := NewQuizHandler(
		usecase.NewQuizPipeline(deps.quiz, inv, nil, usecase.DefaultThemeCount, nil),
		usecase.NewDiagnosisPipeline(deps.diagnoser, inv, nil),
		matcher,
		5*time.Second,
		nil,
	)

	app := fiber.New()
	if deps.limiter != nil {
		SetupRouter(app, h, deps.limiter)
	} else {
		SetupRouter(app, h, nil)
	}
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func answersBody(t *testing.T) string {
	t.Helper()
	quiz := sampleQuiz()
	answers := make([]entity.QuestionAnswer, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers[i] = entity.QuestionAnswer{Question: q, SelectedChoiceIndex: 2}
	}
	raw, err := json.Marshal(map[string]any{"question_answers": answers})
	require.NoError(t, err)
	return string(raw)
}

func TestHealth(t *testing.T) {
	status, body := do(t, newTestApp(testDeps{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}

func TestGenerateQuiz(t *testing.T) {
	app := newTestApp(testDeps{quiz: stubQuizGenerator{quiz: sampleQuiz()}})

	status, body := do(t, app, http.MethodGet, "/api/questions/generate?seed=42", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(42), body["seed"])
	assert.Len(t, body["questions"], entity.QuestionsPerQuiz)
	assert.Len(t, body["themes"], usecase.DefaultThemeCount)
}

func TestGenerateQuiz_BadSeed(t *testing.T) {
	status, _ := do(t, newTestApp(testDeps{}), http.MethodGet, "/api/questions/generate?seed=abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGenerateQuiz_Exhausted(t *testing.T) {
	app := newTestApp(testDeps{quiz: stubQuizGenerator{err: errors.New("503")}})

	status, body := do(t, app, http.MethodGet, "/api/questions/generate", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "generation failed, please retry", body["error"])
}

func TestDiagnoseAnswers(t *testing.T) {
	app := newTestApp(testDeps{diagnoser: stubDiagnoser{
		result: &entity.PrimaryDiagnosis{Primary: "強化系", SpecialistScore: 70, Reason: "芯が強い"},
	}})

	status, body := do(t, app, http.MethodPost, "/api/diagnosis", answersBody(t))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{100.0, 80.0, 60.0, 70.0, 60.0, 80.0}, body["scores"])
	assert.Equal(t, "芯が強い", body["comment"])
	assert.Equal(t, "強化系", body["primary"])
}

func TestDiagnoseAnswers_InvalidCategoryFromModel(t *testing.T) {
	app := newTestApp(testDeps{diagnoser: stubDiagnoser{
		result: &entity.PrimaryDiagnosis{Primary: "謎系", SpecialistScore: 70, Reason: "?"},
	}})

	status, _ := do(t, app, http.MethodPost, "/api/diagnosis", answersBody(t))
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestDiagnoseAnswers_BadInput(t *testing.T) {
	app := newTestApp(testDeps{})

	status, _ := do(t, app, http.MethodPost, "/api/diagnosis", `{"question_answers":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/diagnosis", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDiagnoseProfile(t *testing.T) {
	app := newTestApp(testDeps{diagnoser: stubDiagnoser{
		result: &entity.PrimaryDiagnosis{Primary: "放出系", SpecialistScore: 15, Reason: "決定力"},
	}})

	status, body := do(t, app, http.MethodPost, "/api/diagnosis/profile", `{"id":9,"name":"山田","position":"FW"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{80.0, 60.0, 40.0, 15.0, 80.0, 100.0}, body["scores"])
}

func TestScore(t *testing.T) {
	app := newTestApp(testDeps{})

	status, body := do(t, app, http.MethodPost, "/api/affinity/score", `{"primary":"強化系","specialist_score":70}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{100.0, 80.0, 60.0, 70.0, 60.0, 80.0}, body["scores"])

	for _, bad := range []string{
		`{"primary":"謎系","specialist_score":70}`,
		`{"primary":"強化系","specialist_score":101}`,
		`{"primary":"強化系"}`,
	} {
		status, _ := do(t, app, http.MethodPost, "/api/affinity/score", bad)
		assert.Equal(t, http.StatusBadRequest, status, bad)
	}
}

func TestMatch(t *testing.T) {
	app := newTestApp(testDeps{index: &stubIndex{match: &entity.PlayerMatch{PlayerID: 1, Name: "守護神", Position: "GK"}}})

	status, body := do(t, app, http.MethodPost, "/api/players/match", `{"primary":"強化系","specialist_score":50}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "守護神", body["name"])
}

func TestMatch_NoPlayers(t *testing.T) {
	app := newTestApp(testDeps{index: &stubIndex{}})
	status, _ := do(t, app, http.MethodPost, "/api/players/match", `{"primary":"強化系","specialist_score":50}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMatch_Unavailable(t *testing.T) {
	status, _ := do(t, newTestApp(testDeps{}), http.MethodPost, "/api/players/match", `{"primary":"強化系","specialist_score":50}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestRateLimit(t *testing.T) {
	app := newTestApp(testDeps{limiter: &stubLimiter{allowed: false}})
	status, _ := do(t, app, http.MethodPost, "/api/affinity/score", `{"primary":"強化系","specialist_score":70}`)
	assert.Equal(t, http.StatusTooManyRequests, status)

	// Health stays outside the limiter.
	status, _ = do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRateLimit_LimiterOutageFailsOpen(t *testing.T) {
	app := newTestApp(testDeps{limiter: &stubLimiter{err: errors.New("redis down")}})
	status, _ := do(t, app, http.MethodPost, "/api/affinity/score", `{"primary":"強化系","specialist_score":70}`)
	assert.Equal(t, http.StatusOK, status)
}
