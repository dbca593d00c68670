package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

// Reporter writes the HR-facing narrative from the summarizer's structured
// output. It always runs after the summarizer; that ordering is owned by the
// report service.
type Reporter struct {
	llm domain.LLMClient
}

func NewReporter(llm domain.LLMClient) *Reporter {
	return &Reporter{llm: llm}
}

func (a *Reporter) Name() string {
	return "reporter"
}

// WriteReport implements domain.ReportWriter.
func (a *Reporter) WriteReport(ctx context.Context, summaryJSON string) (string, error) {
	reply, err := a.llm.Complete(ctx, reporterSystem, fmt.Sprintf(reporterTemplate, summaryJSON))
	if err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
