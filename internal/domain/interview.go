package domain

import "time"

// Session is the runtime state of one interview attempt. The question queue
// only grows and the cursor only moves forward; long-term content lives in
// the transcript store, not here.
type Session struct {
	ID     SessionID
	JD     string
	Resume string

	Questions []string
	Cursor    int

	StartedAt Timestamp
	Deadline  time.Duration
	State     SessionState

	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// DeadlinePassed reports whether the interview time budget was exhausted at
// the given instant.
func (s *Session) DeadlinePassed(now time.Time) bool {
	return now.Sub(s.StartedAt) > s.Deadline
}

// TranscriptEntry is one role-tagged message in a session's append-only log.
type TranscriptEntry struct {
	ID        EntryID
	SessionID SessionID
	Role      Role
	Content   string
	CreatedAt Timestamp
}

// ScoreRecord is the evaluation of a single answer.
type ScoreRecord struct {
	Relevance int      `json:"relevance"`
	Clarity   int      `json:"clarity"`
	Technical int      `json:"technical"`
	RedFlags  []string `json:"red_flags"`
	Note      string   `json:"note"`
}

// NeutralScore is the named fallback used when evaluation is unavailable:
// all axes at the midpoint, no red flags, the note recording why.
func NeutralScore(note string) ScoreRecord {
	return ScoreRecord{
		Relevance: 5,
		Clarity:   5,
		Technical: 5,
		RedFlags:  []string{},
		Note:      note,
	}
}

// QAEntry pairs one asked question with the answer that followed it. It is
// reconstructed from the transcript during aggregation, never stored.
type QAEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SummaryRecord is the structured outcome of summarizing a full transcript.
type SummaryRecord struct {
	Strengths      []string       `json:"strengths"`
	Weaknesses     []string       `json:"weaknesses"`
	OverallScore   int            `json:"overall_score"`
	Recommendation Recommendation `json:"recommendation"`
	Summary        string         `json:"summary"`
}

// FallbackSummary is the named default used when summarization is
// unavailable, so the report always has a well-formed shape.
func FallbackSummary() SummaryRecord {
	return SummaryRecord{
		Strengths:      []string{},
		Weaknesses:     []string{},
		OverallScore:   60,
		Recommendation: RecommendMaybe,
	}
}

// Report is the final aggregated hiring report for one session.
type Report struct {
	InterviewLog []QAEntry
	Summary      string
	Status       Recommendation
	Strengths    []string
	Weaknesses   []string
	OverallScore int
	HRReport     string
}
