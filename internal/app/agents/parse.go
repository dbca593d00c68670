package agents

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

// stripFences removes markdown code fences the model sometimes wraps around
// JSON output.
func stripFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

// ParseScoreRecord decodes a model reply into a ScoreRecord. A reply that is
// not the expected JSON contract yields ErrUnparsableModelOutput, so callers
// can tell "call failed" apart from "call succeeded with garbage".
func ParseScoreRecord(raw string) (domain.ScoreRecord, error) {
	var score domain.ScoreRecord
	if err := json.Unmarshal([]byte(stripFences(raw)), &score); err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("%w: %v", domain.ErrUnparsableModelOutput, err)
	}
	if score.RedFlags == nil {
		score.RedFlags = []string{}
	}
	return score, nil
}

// ParseSummaryRecord decodes a model reply into a SummaryRecord, backfilling
// the documented defaults for absent fields.
func ParseSummaryRecord(raw string) (domain.SummaryRecord, error) {
	var summary domain.SummaryRecord
	if err := json.Unmarshal([]byte(stripFences(raw)), &summary); err != nil {
		return domain.SummaryRecord{}, fmt.Errorf("%w: %v", domain.ErrUnparsableModelOutput, err)
	}
	if summary.Strengths == nil {
		summary.Strengths = []string{}
	}
	if summary.Weaknesses == nil {
		summary.Weaknesses = []string{}
	}
	if summary.Recommendation == "" {
		summary.Recommendation = domain.RecommendMaybe
	}
	return summary, nil
}

// splitQuestionLines turns a model reply into a question list: one question
// per line, bullets trimmed, empty lines dropped, capped at n.
func splitQuestionLines(raw string, n int) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Trim(line, " -•\t")
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == n {
			break
		}
	}
	return questions
}
