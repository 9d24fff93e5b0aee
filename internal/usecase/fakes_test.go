package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"nenmatch/internal/domain/entity"
)

// validQuiz builds a quiz with the required shape.
func validQuiz() *entity.Quiz {
	q := &entity.Quiz{}
	for i := 0; i < entity.QuestionsPerQuiz; i++ {
		question := entity.Question{QuestionText: fmt.Sprintf("質問%d", i+1)}
		for j := 0; j < entity.ChoicesPerQuestion; j++ {
			question.Choices = append(question.Choices, entity.Choice{
				Text:    fmt.Sprintf("選択肢%d", j+1),
				NenType: entity.Categories[(i+j)%entity.CategoryCount],
			})
		}
		q.Questions = append(q.Questions, question)
	}
	return q
}

func validAnswers() []entity.QuestionAnswer {
	quiz := validQuiz()
	answers := make([]entity.QuestionAnswer, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers[i] = entity.QuestionAnswer{Question: q, SelectedChoiceIndex: i % entity.ChoicesPerQuestion}
	}
	return answers
}

// fakeQuizGenerator replays scripted results, one per call.
type fakeQuizGenerator struct {
	mu       sync.Mutex
	results  []quizResult
	requests []entity.QuizRequest
}

type quizResult struct {
	quiz *entity.Quiz
	err  error
}

func (f *fakeQuizGenerator) GenerateQuiz(ctx context.Context, req entity.QuizRequest) (*entity.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.results) == 0 {
		return nil, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.quiz, r.err
}

type fakeDiagnoser struct {
	mu       sync.Mutex
	results  []diagnosisResult
	requests []entity.DiagnosisRequest
}

type diagnosisResult struct {
	d   *entity.PrimaryDiagnosis
	err error
}

func (f *fakeDiagnoser) Diagnose(ctx context.Context, req entity.DiagnosisRequest) (*entity.PrimaryDiagnosis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.results) == 0 {
		return nil, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.d, r.err
}

// fakePlayerIndex is an in-memory PlayerIndex using squared Euclidean distance.
type fakePlayerIndex struct {
	players   map[int]entity.PlayerDiagnosis
	existsErr error
	upsertErr error
	queries   []string
}

func newFakePlayerIndex(players ...entity.PlayerDiagnosis) *fakePlayerIndex {
	idx := &fakePlayerIndex{players: map[int]entity.PlayerDiagnosis{}}
	for _, p := range players {
		idx.players[p.PlayerID] = p
	}
	return idx
}

func (f *fakePlayerIndex) Exists(ctx context.Context, playerID int) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.players[playerID]
	return ok, nil
}

func (f *fakePlayerIndex) Upsert(ctx context.Context, p entity.PlayerDiagnosis) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.players[p.PlayerID] = p
	return nil
}

func (f *fakePlayerIndex) Nearest(ctx context.Context, vector entity.AffinityVector, position string) (*entity.PlayerMatch, error) {
	f.queries = append(f.queries, position)
	var best *entity.PlayerMatch
	for _, p := range f.players {
		if position != "" && p.Position != position {
			continue
		}
		var dist float32
		for i := range vector {
			d := float32(vector[i] - p.Diagnosis.Scores[i])
			dist += d * d
		}
		if best == nil || dist < best.Distance {
			best = &entity.PlayerMatch{
				PlayerID: p.PlayerID,
				Name:     p.Name,
				Position: p.Position,
				Primary:  p.Diagnosis.Primary,
				Distance: dist,
			}
		}
	}
	return best, nil
}
