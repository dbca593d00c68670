package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
	"github.com/Adithya-srikar/Ai-interview/internal/observability"
)

// ReasonTimeExceeded is returned on a deadline short-circuit. It is a
// terminal result, not an error.
const ReasonTimeExceeded = "Interview time exceeded."

const prescreenSkipped = "Prescreen skipped."

// defaultFallbackQuestions is the last line of defense in Initiate: a session
// must never start with an empty queue, even when the Service was built with
// no fallback set and seed generation fails.
var defaultFallbackQuestions = []string{
	"Tell me about your most relevant project for this role.",
	"Which part of the JD best matches your skillset, and why?",
}

// Options are the per-deployment interview parameters.
type Options struct {
	InitialQuestions  int
	Deadline          time.Duration
	FallbackQuestions []string
}

// Service is the session state machine: it owns the question cursor,
// enforces the time budget, and records every turn in the transcript store.
type Service struct {
	questions   domain.QuestionGenerator
	evaluator   domain.AnswerEvaluator
	prescreener domain.Prescreener

	sessions    domain.SessionStore
	transcripts domain.TranscriptStore

	opts Options
	now  func() time.Time

	// One mutex per session so concurrent submits cannot race on the
	// cursor or interleave transcript appends.
	locks sync.Map // domain.SessionID -> *sync.Mutex
}

func NewService(
	questions domain.QuestionGenerator,
	evaluator domain.AnswerEvaluator,
	prescreener domain.Prescreener,
	sessions domain.SessionStore,
	transcripts domain.TranscriptStore,
	opts Options,
) *Service {
	return &Service{
		questions:   questions,
		evaluator:   evaluator,
		prescreener: prescreener,
		sessions:    sessions,
		transcripts: transcripts,
		opts:        opts,
		now:         time.Now,
	}
}

func (s *Service) sessionLock(id domain.SessionID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ReleaseSession drops the per-session mutex once the backing session is
// gone, so the lock table stays bounded by the store's eviction. Wired as
// the in-memory store's evict hook.
func (s *Service) ReleaseSession(id domain.SessionID) {
	mu := s.sessionLock(id)
	mu.Lock()
	s.locks.Delete(id)
	mu.Unlock()
}

func (s *Service) record(sessionID domain.SessionID, role domain.Role, content string) error {
	return s.transcripts.Append(&domain.TranscriptEntry{
		ID:        domain.EntryID(uuid.NewString()),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: s.now(),
	})
}

type InitiateInput struct {
	JD     string
	Resume string
}

type InitiateOutput struct {
	Session        *domain.Session
	PrescreenNotes string
}

// Initiate creates a session seeded with a question queue. It never hard-fails
// on upstream trouble: prescreen degrades to skipped notes and question
// generation degrades to the fixed fallback set, so the session always starts
// non-empty.
func (s *Service) Initiate(ctx context.Context, in InitiateInput) (*InitiateOutput, error) {
	now := s.now()
	id := domain.SessionID(uuid.NewString())

	log := observability.LoggerFromContext(ctx).With("session_id", id)
	log.Info("initiating interview")

	if err := s.record(id, domain.RoleUser, "JD: "+in.JD); err != nil {
		log.Error("failed to record jd", "error", err)
		return nil, err
	}
	if err := s.record(id, domain.RoleUser, "Resume: "+in.Resume); err != nil {
		log.Error("failed to record resume", "error", err)
		return nil, err
	}

	notes, err := s.prescreener.Prescreen(ctx, in.JD, in.Resume)
	if err != nil {
		log.Warn("prescreen unavailable", "error", err)
		notes = prescreenSkipped
	} else {
		if err := s.record(id, domain.RoleAssistant, "Prescreen Notes: "+notes); err != nil {
			log.Error("failed to record prescreen notes", "error", err)
			return nil, err
		}
	}

	questions, err := s.questions.Generate(ctx, in.JD, in.Resume, s.opts.InitialQuestions)
	if err != nil {
		log.Warn("seed generation unavailable, using fallback set", "error", err)
		questions = append([]string(nil), s.opts.FallbackQuestions...)
	}
	if len(questions) == 0 {
		log.Warn("empty question seed, using built-in questions")
		questions = append([]string(nil), defaultFallbackQuestions...)
	}
	if err := s.record(id, domain.RoleAssistant, "Initial Questions: "+strings.Join(questions, " | ")); err != nil {
		log.Error("failed to record initial questions", "error", err)
		return nil, err
	}

	session := &domain.Session{
		ID:        id,
		JD:        in.JD,
		Resume:    in.Resume,
		Questions: questions,
		Cursor:    0,
		StartedAt: now,
		Deadline:  s.opts.Deadline,
		State:     domain.StateActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Put(session); err != nil {
		log.Error("failed to store session", "error", err)
		return nil, err
	}

	log.Info("interview initiated", "questions", len(questions))

	return &InitiateOutput{
		Session:        session,
		PrescreenNotes: notes,
	}, nil
}

// FetchNextQuestion returns the question at the cursor without mutating
// state, so repeated calls before an answer return the same text. Once the
// queue is exhausted it synthesizes one new question from the transcript and
// appends it to the queue; synthesis failure surfaces as
// ErrGenerationUnavailable with the queue unchanged.
func (s *Service) FetchNextQuestion(ctx context.Context, id domain.SessionID) (string, error) {
	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.locks.Delete(id)
		}
		return "", err
	}

	if session.Cursor < len(session.Questions) {
		return session.Questions[session.Cursor], nil
	}

	log := observability.LoggerFromContext(ctx).With("session_id", id)
	log.Info("queue exhausted, synthesizing follow-up")

	entries, err := s.transcripts.ReadAll(id)
	if err != nil {
		return "", err
	}
	history := make([]string, 0, len(entries))
	for _, e := range entries {
		history = append(history, e.Content)
	}

	question, err := s.questions.NextQuestion(ctx, strings.Join(history, "\n"))
	if err != nil {
		log.Error("follow-up synthesis failed", "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}

	session.Questions = append(session.Questions, question)
	session.UpdatedAt = s.now()
	if err := s.sessions.Put(session); err != nil {
		return "", err
	}

	return question, nil
}

type SubmitAnswerOutput struct {
	Finished   bool
	Evaluation *domain.ScoreRecord
	Reason     string
}

// SubmitAnswer records one answer turn. The deadline is checked before any
// external call; an expired session gets a terminal result with nothing
// recorded. Evaluation failure never blocks progress: a neutral score stands
// in for the evaluator.
func (s *Service) SubmitAnswer(ctx context.Context, id domain.SessionID, answer string) (*SubmitAnswerOutput, error) {
	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.locks.Delete(id)
		}
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", id, "cursor", session.Cursor)

	if session.DeadlinePassed(s.now()) {
		log.Info("deadline passed, rejecting answer")
		session.State = domain.StateExpired
		session.UpdatedAt = s.now()
		if err := s.sessions.Put(session); err != nil {
			return nil, err
		}
		return &SubmitAnswerOutput{
			Finished: true,
			Reason:   ReasonTimeExceeded,
		}, nil
	}

	// Pair the answer with the cursor question, or with the last one when a
	// submission arrives after the queue ran out without a fresh fetch.
	var question string
	if session.Cursor < len(session.Questions) {
		question = session.Questions[session.Cursor]
	} else {
		question = session.Questions[len(session.Questions)-1]
	}

	if err := s.record(id, domain.RoleAssistant, "Q: "+question); err != nil {
		log.Error("failed to record question", "error", err)
		return nil, err
	}
	if err := s.record(id, domain.RoleUser, "A: "+answer); err != nil {
		log.Error("failed to record answer", "error", err)
		return nil, err
	}

	score, err := s.evaluator.Evaluate(ctx, question, answer)
	if err != nil {
		log.Warn("evaluation unavailable, using neutral score", "error", err)
		score = domain.NeutralScore("eval skipped")
	}

	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return nil, err
	}
	if err := s.record(id, domain.RoleAssistant, "Evaluation: "+string(scoreJSON)); err != nil {
		log.Error("failed to record evaluation", "error", err)
		return nil, err
	}

	// Defensive clamp: a cursor already at the end is not advanced past it.
	if session.Cursor < len(session.Questions) {
		session.Cursor++
	}

	finished := session.Cursor >= len(session.Questions)
	if finished {
		session.State = domain.StateComplete
	}

	// Re-check the deadline with a fresh clock read; evaluation itself
	// takes time.
	if session.DeadlinePassed(s.now()) {
		finished = true
		session.State = domain.StateExpired
	}

	session.UpdatedAt = s.now()
	if err := s.sessions.Put(session); err != nil {
		return nil, err
	}

	log.Info("answer recorded", "finished", finished)

	return &SubmitAnswerOutput{
		Finished:   finished,
		Evaluation: &score,
	}, nil
}

// GetSession exposes session state for transport-level checks.
func (s *Service) GetSession(id domain.SessionID) (*domain.Session, error) {
	return s.sessions.Get(id)
}
