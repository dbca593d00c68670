package llm

import (
	"context"
	"strings"
)

// MockClient is a deterministic LLMClient for local development and tests.
// A few keyword rules keep every agent's output contract satisfied without
// touching a real model. Rule order matters: the reporter prompt embeds the
// summary JSON, so it must match before the summary rule does.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "interview questions"):
		return "Walk me through the architecture of your most recent project.\n" +
			"How have you used the core technologies listed in the job description?\n" +
			"Describe a production incident you debugged end to end.\n" +
			"What trade-off in a past design would you revisit today?\n" +
			"How do you prefer to collaborate with product and design?", nil
	case strings.Contains(prompt, "ONE concise next question"):
		return "Can you go one level deeper on the technical decision you just described?", nil
	case strings.Contains(prompt, "Must-have"):
		return "Must-have: core stack experience. Nice-to-have: domain exposure. Risks: none detected (mock).", nil
	case strings.Contains(prompt, "HR-friendly report"):
		return "Mock report.\n\nOverview\nThe candidate completed the interview.", nil
	case strings.Contains(prompt, "recommendation"):
		// Must come before the red_flags rule: the summary prompt embeds
		// transcript lines that carry serialized evaluations.
		return `{"strengths": ["communicates clearly"], "weaknesses": ["limited depth"], "overall_score": 70, "recommendation": "Maybe", "summary": "Mock summary of the interview."}`, nil
	case strings.Contains(prompt, "red_flags"):
		return `{"relevance": 7, "clarity": 7, "technical": 6, "red_flags": [], "note": "mock evaluation"}`, nil
	default:
		return "Understood.", nil
	}
}
