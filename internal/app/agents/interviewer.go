package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
	"github.com/Adithya-srikar/Ai-interview/internal/observability"
)

// Interviewer generates questions: a seed batch from JD and resume, and
// single follow-ups from the running transcript once the seed is spent.
type Interviewer struct {
	llm domain.LLMClient
}

func NewInterviewer(llm domain.LLMClient) *Interviewer {
	return &Interviewer{llm: llm}
}

func (a *Interviewer) Name() string {
	return "interviewer"
}

// Generate implements domain.QuestionGenerator.
func (a *Interviewer) Generate(ctx context.Context, jd, resume string, n int) ([]string, error) {
	log := observability.LoggerFromContext(ctx).With("agent", a.Name())

	reply, err := a.llm.Complete(ctx, questionSystem, fmt.Sprintf(questionTemplate, n, jd, resume))
	if err != nil {
		log.Error("question generation failed", "error", err)
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions := splitQuestionLines(reply, n)
	if len(questions) == 0 {
		return nil, fmt.Errorf("generate questions: %w", domain.ErrUnparsableModelOutput)
	}

	log.Info("questions generated", "count", len(questions))
	return questions, nil
}

// NextQuestion implements domain.QuestionGenerator.
func (a *Interviewer) NextQuestion(ctx context.Context, history string) (string, error) {
	reply, err := a.llm.Complete(ctx, followupSystem, fmt.Sprintf(followupTemplate, history))
	if err != nil {
		return "", fmt.Errorf("next question: %w", err)
	}

	question := strings.TrimSpace(reply)
	if question == "" {
		return "", fmt.Errorf("next question: %w", domain.ErrUnparsableModelOutput)
	}
	return question, nil
}
