package report

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
	"github.com/Adithya-srikar/Ai-interview/internal/observability"
)

const reportSkipped = "Report generation skipped."

const questionPrefix = "Q: "
const answerPrefix = "A: "

// Service aggregates a session's raw transcript into the final hiring
// report. Aggregation is deliberately defensive: this is the terminal,
// user-facing step, so every external call degrades to a safe default
// instead of failing the whole report.
type Service struct {
	transcripts domain.TranscriptStore
	summarizer  domain.TranscriptSummarizer
	reporter    domain.ReportWriter
}

func NewService(
	transcripts domain.TranscriptStore,
	summarizer domain.TranscriptSummarizer,
	reporter domain.ReportWriter,
) *Service {
	return &Service{
		transcripts: transcripts,
		summarizer:  summarizer,
		reporter:    reporter,
	}
}

// ProduceReport re-derives the report from the full transcript on every
// call; nothing is cached.
func (s *Service) ProduceReport(ctx context.Context, id domain.SessionID) (*domain.Report, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	entries, err := s.transcripts.ReadAll(id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoTranscript
	}

	qaLog, transcript := reconstruct(entries)

	// Stage one: structured summary. Stage two feeds on its serialized
	// output, so the ordering is a real pipeline dependency.
	summary, err := s.summarizer.Summarize(ctx, transcript)
	if err != nil {
		log.Warn("summarizer unavailable, using fallback summary", "error", err)
		summary = domain.FallbackSummary()
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	hrReport, err := s.reporter.WriteReport(ctx, string(summaryJSON))
	if err != nil {
		log.Warn("reporter unavailable, using placeholder", "error", err)
		hrReport = reportSkipped
	}

	// The structured narrative wins over the free-form one.
	narrative := summary.Summary
	if narrative == "" {
		narrative = hrReport
	}

	status := summary.Recommendation
	if status == "" {
		status = domain.RecommendMaybe
	}

	log.Info("report produced", "qa_entries", len(qaLog), "status", status)

	return &domain.Report{
		InterviewLog: qaLog,
		Summary:      narrative,
		Status:       status,
		Strengths:    summary.Strengths,
		Weaknesses:   summary.Weaknesses,
		OverallScore: summary.OverallScore,
		HRReport:     hrReport,
	}, nil
}

// reconstruct walks the transcript once, pairing each tagged question with
// the answer that follows it, and concatenates all raw content into the
// narrative transcript fed to the summarizer. An answer with no pending
// question is dropped; that guards against malformed interleaving rather
// than repairing it.
func reconstruct(entries []*domain.TranscriptEntry) ([]domain.QAEntry, string) {
	qaLog := []domain.QAEntry{}
	parts := make([]string, 0, len(entries))

	var pendingQuestion string
	var havePending bool

	for _, e := range entries {
		parts = append(parts, e.Content)

		switch {
		case strings.HasPrefix(e.Content, questionPrefix):
			pendingQuestion = strings.TrimSpace(strings.TrimPrefix(e.Content, questionPrefix))
			havePending = true
		case strings.HasPrefix(e.Content, answerPrefix) && havePending:
			qaLog = append(qaLog, domain.QAEntry{
				Question: pendingQuestion,
				Answer:   strings.TrimSpace(strings.TrimPrefix(e.Content, answerPrefix)),
			})
			pendingQuestion = ""
			havePending = false
		}
	}

	return qaLog, strings.Join(parts, "\n")
}
