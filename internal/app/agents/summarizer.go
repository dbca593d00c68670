package agents

import (
	"context"
	"fmt"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
	"github.com/Adithya-srikar/Ai-interview/internal/observability"
)

// Summarizer condenses a full interview transcript into a structured
// SummaryRecord.
type Summarizer struct {
	llm domain.LLMClient
}

func NewSummarizer(llm domain.LLMClient) *Summarizer {
	return &Summarizer{llm: llm}
}

func (a *Summarizer) Name() string {
	return "summarizer"
}

// Summarize implements domain.TranscriptSummarizer.
func (a *Summarizer) Summarize(ctx context.Context, transcript string) (domain.SummaryRecord, error) {
	log := observability.LoggerFromContext(ctx).With("agent", a.Name())

	reply, err := a.llm.Complete(ctx, summarySystem, fmt.Sprintf(summaryTemplate, transcript))
	if err != nil {
		log.Error("summarization failed", "error", err)
		return domain.SummaryRecord{}, fmt.Errorf("summarize transcript: %w", err)
	}

	summary, err := ParseSummaryRecord(reply)
	if err != nil {
		log.Error("summary did not match contract", "error", err)
		return domain.SummaryRecord{}, err
	}

	return summary, nil
}
