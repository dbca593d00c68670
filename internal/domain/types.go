package domain

import "time"

type SessionID string
type EntryID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SessionState describes where a session is in its lifecycle.
// Complete and expired are terminal from the caller's perspective.
type SessionState string

const (
	StateActive   SessionState = "active"
	StateComplete SessionState = "complete"
	StateExpired  SessionState = "expired"
)

// Recommendation is the hiring outcome of a summarized interview.
type Recommendation string

const (
	RecommendHire   Recommendation = "Hire"
	RecommendNoHire Recommendation = "No Hire"
	RecommendMaybe  Recommendation = "Maybe"
)

type Timestamp = time.Time
