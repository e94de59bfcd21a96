package memory

import (
	"context"
	"sync"

	"github.com/golestat/prediction-league/internal/domain/question"
)

type QuestionRepository struct {
	mu         sync.RWMutex
	items      map[string]question.Question
	byMatch    map[string][]string
	bySeason   map[string][]string
	answers    map[string]question.Answer
	byQuestion map[string][]string
}

func NewQuestionRepository(questions []question.Question, answers []question.Answer) *QuestionRepository {
	r := &QuestionRepository{
		items:      make(map[string]question.Question, len(questions)),
		byMatch:    make(map[string][]string),
		bySeason:   make(map[string][]string),
		answers:    make(map[string]question.Answer, len(answers)),
		byQuestion: make(map[string][]string),
	}
	for _, q := range questions {
		r.items[q.ID] = q
		if q.MatchID != nil {
			r.byMatch[*q.MatchID] = append(r.byMatch[*q.MatchID], q.ID)
		} else {
			r.bySeason[q.SeasonID] = append(r.bySeason[q.SeasonID], q.ID)
		}
	}
	for _, a := range answers {
		r.answers[a.ID] = a
		r.byQuestion[a.QuestionID] = append(r.byQuestion[a.QuestionID], a.ID)
	}
	return r
}

func (r *QuestionRepository) GetByID(_ context.Context, questionID string) (question.Question, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.items[questionID]
	if !ok {
		return question.Question{}, false, nil
	}
	return q, true, nil
}

func (r *QuestionRepository) ListByMatch(_ context.Context, matchID string) ([]question.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byMatch[matchID]
	out := make([]question.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *QuestionRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]question.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]question.Question, 0)
	for _, matchID := range matchIDs {
		for _, id := range r.byMatch[matchID] {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *QuestionRepository) ListTimedBySeason(_ context.Context, seasonID string) ([]question.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySeason[seasonID]
	out := make([]question.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *QuestionRepository) ListTimedBySeasonWeek(_ context.Context, seasonID string, week int) ([]question.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySeason[seasonID]
	out := make([]question.Question, 0, len(ids))
	for _, id := range ids {
		if q := r.items[id]; q.Week == week {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *QuestionRepository) ListAnswersByQuestion(_ context.Context, questionID string) ([]question.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byQuestion[questionID]
	out := make([]question.Answer, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.answers[id])
	}
	return out, nil
}

func (r *QuestionRepository) ListAnswersByQuestions(ctx context.Context, questionIDs []string) ([]question.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]question.Answer, 0)
	for _, questionID := range questionIDs {
		for _, id := range r.byQuestion[questionID] {
			out = append(out, r.answers[id])
		}
	}
	return out, nil
}

func (r *QuestionRepository) SetCorrectAnswer(_ context.Context, questionID, answer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.items[questionID]
	if !ok {
		return nil
	}
	q.CorrectAnswer = &answer
	r.items[questionID] = q
	return nil
}

func (r *QuestionRepository) setAnswerPoints(answerID string, points int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.answers[answerID]
	if !ok {
		return
	}
	a.Points = points
	r.answers[answerID] = a
}

// GetAnswerByID is a test convenience for asserting written point values.
func (r *QuestionRepository) GetAnswerByID(_ context.Context, answerID string) (question.Answer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.answers[answerID]
	return a, ok, nil
}
