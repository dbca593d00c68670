package domain

import "errors"

var (
	// ErrSessionNotFound is returned for an unknown session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrGenerationUnavailable is returned when a genuinely new question
	// cannot be produced and no safe default exists.
	ErrGenerationUnavailable = errors.New("question generation unavailable")

	// ErrNoTranscript is returned when a report is requested for a session
	// with no recorded transcript.
	ErrNoTranscript = errors.New("no transcript for session")

	// ErrUnparsableModelOutput marks a model call that succeeded but
	// returned content that does not match the expected JSON contract.
	ErrUnparsableModelOutput = errors.New("unparsable model output")
)
