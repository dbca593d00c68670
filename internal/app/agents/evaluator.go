package agents

import (
	"context"
	"fmt"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

// Evaluator scores a single answer. It returns an error both when the model
// call fails and when the reply breaks the JSON contract; the fallback to a
// neutral score is the caller's decision, not this agent's.
type Evaluator struct {
	llm domain.LLMClient
}

func NewEvaluator(llm domain.LLMClient) *Evaluator {
	return &Evaluator{llm: llm}
}

func (a *Evaluator) Name() string {
	return "evaluator"
}

// Evaluate implements domain.AnswerEvaluator.
func (a *Evaluator) Evaluate(ctx context.Context, question, answer string) (domain.ScoreRecord, error) {
	reply, err := a.llm.Complete(ctx, evaluatorSystem, fmt.Sprintf(evaluatorTemplate, question, answer))
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("evaluate answer: %w", err)
	}

	return ParseScoreRecord(reply)
}
