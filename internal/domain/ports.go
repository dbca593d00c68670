package domain

import "context"

// LLMClient defines how the core application talks to a language model.
type LLMClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// QuestionGenerator produces interview questions: a seed batch up front and
// single follow-ups once the fixed queue is exhausted.
type QuestionGenerator interface {
	Generate(ctx context.Context, jd, resume string, n int) ([]string, error)
	NextQuestion(ctx context.Context, history string) (string, error)
}

// AnswerEvaluator scores one answer against the question it was given for.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question, answer string) (ScoreRecord, error)
}

// Prescreener extracts must-have skills and risk areas from JD and resume.
type Prescreener interface {
	Prescreen(ctx context.Context, jd, resume string) (string, error)
}

// TranscriptSummarizer turns a full transcript into a structured summary.
type TranscriptSummarizer interface {
	Summarize(ctx context.Context, transcript string) (SummaryRecord, error)
}

// ReportWriter produces the HR-facing narrative from a serialized summary.
type ReportWriter interface {
	WriteReport(ctx context.Context, summaryJSON string) (string, error)
}

// SessionStore defines session persistence. Implementations own eviction of
// terminal and stale sessions.
type SessionStore interface {
	Put(session *Session) error
	Get(id SessionID) (*Session, error)
	Delete(id SessionID) error
}

// TranscriptStore is the append-only per-session message log. Entries are
// never mutated or deleted by the orchestration process; same-session reads
// return entries in append order.
type TranscriptStore interface {
	Append(entry *TranscriptEntry) error
	ReadAll(sessionID SessionID) ([]*TranscriptEntry, error)
}
