package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

// Prescreener analyzes JD and resume before the interview starts.
type Prescreener struct {
	llm domain.LLMClient
}

func NewPrescreener(llm domain.LLMClient) *Prescreener {
	return &Prescreener{llm: llm}
}

func (a *Prescreener) Name() string {
	return "prescreener"
}

// Prescreen implements domain.Prescreener.
func (a *Prescreener) Prescreen(ctx context.Context, jd, resume string) (string, error) {
	reply, err := a.llm.Complete(ctx, prescreenSystem, fmt.Sprintf(prescreenTemplate, jd, resume))
	if err != nil {
		return "", fmt.Errorf("prescreen: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
