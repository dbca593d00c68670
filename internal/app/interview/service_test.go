package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	memstore "github.com/Adithya-srikar/Ai-interview/internal/adapters/storage/memory"
	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

type fakeGenerator struct {
	questions []string
	genErr    error

	next      string
	nextErr   error
	nextCalls int
}

func (f *fakeGenerator) Generate(ctx context.Context, jd, resume string, n int) ([]string, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.questions, nil
}

func (f *fakeGenerator) NextQuestion(ctx context.Context, history string) (string, error) {
	f.nextCalls++
	if f.nextErr != nil {
		return "", f.nextErr
	}
	return f.next, nil
}

type fakeEvaluator struct {
	score domain.ScoreRecord
	err   error
	calls int

	// onCall lets a test advance the clock mid-evaluation.
	onCall func()
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, question, answer string) (domain.ScoreRecord, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return domain.ScoreRecord{}, f.err
	}
	return f.score, nil
}

type fakePrescreener struct {
	notes string
	err   error
}

func (f *fakePrescreener) Prescreen(ctx context.Context, jd, resume string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.notes, nil
}

type fixture struct {
	svc         *Service
	generator   *fakeGenerator
	evaluator   *fakeEvaluator
	prescreener *fakePrescreener
	transcripts *memstore.TranscriptStore
	clock       *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	generator := &fakeGenerator{
		questions: []string{"q1", "q2", "q3"},
		next:      "follow-up",
	}
	evaluator := &fakeEvaluator{
		score: domain.ScoreRecord{Relevance: 8, Clarity: 7, Technical: 9, RedFlags: []string{}, Note: "solid"},
	}
	prescreener := &fakePrescreener{notes: "Must-have: Go."}

	sessions := memstore.NewSessionStore(time.Hour)
	transcripts := memstore.NewTranscriptStore()

	svc := NewService(generator, evaluator, prescreener, sessions, transcripts, Options{
		InitialQuestions: 3,
		Deadline:         600 * time.Second,
		FallbackQuestions: []string{
			"Tell me about your most relevant project for this role.",
			"Which part of the JD best matches your skillset, and why?",
		},
	})

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	return &fixture{
		svc:         svc,
		generator:   generator,
		evaluator:   evaluator,
		prescreener: prescreener,
		transcripts: transcripts,
		clock:       &clock,
	}
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestInitiateSeedsQueue(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd text", Resume: "resume text"})
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	if out.Session.ID == "" {
		t.Fatal("expected a session id")
	}
	if out.Session.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", out.Session.Cursor)
	}
	if len(out.Session.Questions) != 3 {
		t.Fatalf("expected 3 seeded questions, got %d", len(out.Session.Questions))
	}
	if out.PrescreenNotes != "Must-have: Go." {
		t.Fatalf("unexpected prescreen notes: %q", out.PrescreenNotes)
	}

	entries, _ := f.transcripts.ReadAll(out.Session.ID)
	var contents []string
	for _, e := range entries {
		contents = append(contents, e.Content)
	}
	joined := strings.Join(contents, "\n")
	for _, want := range []string{"JD: jd text", "Resume: resume text", "Prescreen Notes:", "Initial Questions:"} {
		if !strings.Contains(joined, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}

func TestInitiateFallsBackWhenUpstreamsFail(t *testing.T) {
	f := newFixture(t)
	f.generator.genErr = errors.New("model down")
	f.prescreener.err = errors.New("model down")

	out, err := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	if out.PrescreenNotes != "Prescreen skipped." {
		t.Fatalf("unexpected prescreen notes: %q", out.PrescreenNotes)
	}
	if len(out.Session.Questions) != 2 {
		t.Fatalf("expected the 2-question fallback set, got %d questions", len(out.Session.Questions))
	}
}

func TestInitiateNeverStartsEmpty(t *testing.T) {
	f := newFixture(t)
	f.generator.genErr = errors.New("model down")
	f.svc.opts.FallbackQuestions = nil

	out, err := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}
	if len(out.Session.Questions) == 0 {
		t.Fatal("the question queue must never start empty")
	}

	// The first submit pairs with a real question instead of panicking on an
	// empty queue.
	res, err := f.svc.SubmitAnswer(context.Background(), out.Session.ID, "answer")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if res.Evaluation == nil {
		t.Fatal("expected an evaluation")
	}
}

func TestLockTableShrinksWithSessions(t *testing.T) {
	f := newFixture(t)
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	id := out.Session.ID

	if _, err := f.svc.FetchNextQuestion(context.Background(), id); err != nil {
		t.Fatalf("FetchNextQuestion failed: %v", err)
	}
	if _, ok := f.svc.locks.Load(id); !ok {
		t.Fatal("expected a lock entry for the live session")
	}

	f.svc.ReleaseSession(id)
	if _, ok := f.svc.locks.Load(id); ok {
		t.Fatal("lock entry must be dropped with the session")
	}

	// A lookup of a missing session never leaves a lock entry behind.
	missing := domain.SessionID("no-such-id")
	if _, err := f.svc.FetchNextQuestion(context.Background(), missing); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, ok := f.svc.locks.Load(missing); ok {
		t.Fatal("missing sessions must not accumulate lock entries")
	}
}

func TestFetchNextQuestionIsIdempotent(t *testing.T) {
	f := newFixture(t)
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})

	first, err := f.svc.FetchNextQuestion(context.Background(), out.Session.ID)
	if err != nil {
		t.Fatalf("FetchNextQuestion failed: %v", err)
	}
	second, err := f.svc.FetchNextQuestion(context.Background(), out.Session.ID)
	if err != nil {
		t.Fatalf("FetchNextQuestion failed: %v", err)
	}

	if first != second || first != "q1" {
		t.Fatalf("expected repeated fetches to return q1, got %q then %q", first, second)
	}
	if f.generator.nextCalls != 0 {
		t.Fatal("synthesis must not run while the queue has questions")
	}
}

func TestFetchNextQuestionUnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FetchNextQuestion(context.Background(), "no-such-id")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestFetchExtendsQueueWhenExhausted(t *testing.T) {
	f := newFixture(t)
	f.generator.questions = []string{"only question"}
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})

	if _, err := f.svc.SubmitAnswer(context.Background(), out.Session.ID, "answer"); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	question, err := f.svc.FetchNextQuestion(context.Background(), out.Session.ID)
	if err != nil {
		t.Fatalf("FetchNextQuestion failed: %v", err)
	}
	if question != "follow-up" {
		t.Fatalf("expected synthesized question, got %q", question)
	}

	session, _ := f.svc.GetSession(out.Session.ID)
	if len(session.Questions) != 2 {
		t.Fatalf("expected queue extended to 2, got %d", len(session.Questions))
	}
}

func TestFetchSurfacesGenerationUnavailable(t *testing.T) {
	f := newFixture(t)
	f.generator.questions = []string{"only question"}
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	_, _ = f.svc.SubmitAnswer(context.Background(), out.Session.ID, "answer")

	f.generator.nextErr = errors.New("model down")

	_, err := f.svc.FetchNextQuestion(context.Background(), out.Session.ID)
	if !errors.Is(err, domain.ErrGenerationUnavailable) {
		t.Fatalf("expected ErrGenerationUnavailable, got %v", err)
	}

	session, _ := f.svc.GetSession(out.Session.ID)
	if len(session.Questions) != 1 {
		t.Fatalf("queue must be unchanged on synthesis failure, got %d questions", len(session.Questions))
	}
}

func TestSubmitAnswerWalksTheQueue(t *testing.T) {
	f := newFixture(t)
	f.generator.genErr = errors.New("model down") // force the 2-question fallback set
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	id := out.Session.ID
	ctx := context.Background()

	q1, _ := f.svc.FetchNextQuestion(ctx, id)
	if q1 != "Tell me about your most relevant project for this role." {
		t.Fatalf("unexpected first question: %q", q1)
	}

	res1, err := f.svc.SubmitAnswer(ctx, id, "answer1")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if res1.Finished {
		t.Fatal("expected finished=false after the first answer")
	}
	session, _ := f.svc.GetSession(id)
	if session.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", session.Cursor)
	}

	q2, _ := f.svc.FetchNextQuestion(ctx, id)
	if q2 != "Which part of the JD best matches your skillset, and why?" {
		t.Fatalf("unexpected second question: %q", q2)
	}

	res2, err := f.svc.SubmitAnswer(ctx, id, "answer2")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if !res2.Finished {
		t.Fatal("expected finished=true after the last answer")
	}

	session, _ = f.svc.GetSession(id)
	if session.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", session.Cursor)
	}
	if session.State != domain.StateComplete {
		t.Fatalf("expected state complete, got %q", session.State)
	}
}

func TestCursorNeverDecreases(t *testing.T) {
	f := newFixture(t)
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	id := out.Session.ID

	last := 0
	for i := 0; i < 6; i++ {
		_, err := f.svc.SubmitAnswer(context.Background(), id, "answer")
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
		session, _ := f.svc.GetSession(id)
		if session.Cursor < last {
			t.Fatalf("cursor decreased from %d to %d", last, session.Cursor)
		}
		if session.Cursor > len(session.Questions) {
			t.Fatalf("cursor %d out of bounds (queue %d)", session.Cursor, len(session.Questions))
		}
		last = session.Cursor
	}
}

func TestSubmitAnswerDeadlineShortCircuit(t *testing.T) {
	f := newFixture(t)
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	id := out.Session.ID

	before, _ := f.transcripts.ReadAll(id)

	f.advance(601 * time.Second)

	res, err := f.svc.SubmitAnswer(context.Background(), id, "too late")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	if !res.Finished {
		t.Fatal("expected finished=true on an expired session")
	}
	if res.Evaluation != nil {
		t.Fatal("expected no evaluation on an expired session")
	}
	if res.Reason != ReasonTimeExceeded {
		t.Fatalf("unexpected reason: %q", res.Reason)
	}
	if f.evaluator.calls != 0 {
		t.Fatal("evaluator must not run after the deadline")
	}

	session, _ := f.svc.GetSession(id)
	if session.Cursor != 0 {
		t.Fatalf("cursor must not advance after the deadline, got %d", session.Cursor)
	}
	if session.State != domain.StateExpired {
		t.Fatalf("expected state expired, got %q", session.State)
	}

	after, _ := f.transcripts.ReadAll(id)
	if len(after) != len(before) {
		t.Fatalf("no transcript append expected, had %d entries, now %d", len(before), len(after))
	}
}

func TestSubmitAnswerEvaluatorFailureUsesNeutralScore(t *testing.T) {
	f := newFixture(t)
	f.evaluator.err = errors.New("model down")
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})

	res, err := f.svc.SubmitAnswer(context.Background(), out.Session.ID, "answer")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	if res.Finished {
		t.Fatal("expected finished=false, two questions remain")
	}
	score := res.Evaluation
	if score == nil {
		t.Fatal("expected a fallback evaluation")
	}
	if score.Relevance != 5 || score.Clarity != 5 || score.Technical != 5 {
		t.Fatalf("expected all axes at 5, got %+v", score)
	}
	if len(score.RedFlags) != 0 {
		t.Fatalf("expected no red flags, got %v", score.RedFlags)
	}
	if score.Note != "eval skipped" {
		t.Fatalf("unexpected note: %q", score.Note)
	}

	entries, _ := f.transcripts.ReadAll(out.Session.ID)
	var sawEvaluation bool
	for _, e := range entries {
		if strings.HasPrefix(e.Content, "Evaluation: ") {
			sawEvaluation = true
		}
	}
	if !sawEvaluation {
		t.Fatal("fallback evaluation must still be recorded in the transcript")
	}
}

func TestSubmitAnswerAfterQueueExhausted(t *testing.T) {
	f := newFixture(t)
	f.generator.questions = []string{"only question"}
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})
	id := out.Session.ID

	_, _ = f.svc.SubmitAnswer(context.Background(), id, "answer")

	// A stray submission with no fresh fetch pairs with the last question
	// and leaves the cursor clamped at the queue end.
	res, err := f.svc.SubmitAnswer(context.Background(), id, "late extra answer")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	if !res.Finished {
		t.Fatal("expected finished=true")
	}

	session, _ := f.svc.GetSession(id)
	if session.Cursor != 1 {
		t.Fatalf("expected cursor clamped at 1, got %d", session.Cursor)
	}
}

func TestDeadlineRecheckedAfterEvaluation(t *testing.T) {
	f := newFixture(t)
	out, _ := f.svc.Initiate(context.Background(), InitiateInput{JD: "jd", Resume: "cv"})

	// The evaluator eats the remaining budget.
	f.evaluator.onCall = func() { f.advance(601 * time.Second) }

	res, err := f.svc.SubmitAnswer(context.Background(), out.Session.ID, "slow answer")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	if !res.Finished {
		t.Fatal("expected finished=true once the deadline passed mid-evaluation")
	}
	if res.Evaluation == nil {
		t.Fatal("the in-flight evaluation still counts")
	}

	session, _ := f.svc.GetSession(out.Session.ID)
	if session.State != domain.StateExpired {
		t.Fatalf("expected state expired, got %q", session.State)
	}
}
