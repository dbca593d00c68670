package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Adithya-srikar/Ai-interview/internal/app/interview"
	"github.com/Adithya-srikar/Ai-interview/internal/app/report"
	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

type Server struct {
	interviews *interview.Service
	reports    *report.Service
}

func NewServer(interviews *interview.Service, reports *report.Service) http.Handler {
	s := &Server{
		interviews: interviews,
		reports:    reports,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /interviews → create session (POST)
	mux.HandleFunc("/interviews", s.handleInterviews)

	// /interviews/{id}/next    → GET:  next question
	// /interviews/{id}/answers → POST: submit an answer
	// /interviews/{id}/report  → GET:  final report
	mux.HandleFunc("/interviews/", s.handleInterviewWithID)

	return chainMiddlewares(mux, withCORS, withRequestLogging)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type initRequest struct {
	JD     string `json:"jd"`
	Resume string `json:"resume"`
}

type initResponse struct {
	SessionID string `json:"session_id"`
	Prescreen string `json:"prescreen"`
}

type nextQuestionResponse struct {
	Question string `json:"question"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type answerResponse struct {
	Finished   bool                `json:"finished"`
	Evaluation *domain.ScoreRecord `json:"evaluation"`
	Reason     string              `json:"reason,omitempty"`
}

type reportResponse struct {
	InterviewLog []domain.QAEntry `json:"interview_log"`
	Summary      string           `json:"summary"`
	Status       string           `json:"status"`
	Strengths    []string         `json:"strengths"`
	Weaknesses   []string         `json:"weaknesses"`
	OverallScore int              `json:"overall_score"`
	HRReport     string           `json:"hr_report"`
}

// ─────────────────────────────────────────────
// Routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInterviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleInitiate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleInterviewWithID(w http.ResponseWriter, r *http.Request) {
	// expected paths:
	// /interviews/{id}/next
	// /interviews/{id}/answers
	// /interviews/{id}/report
	path := strings.TrimPrefix(r.URL.Path, "/interviews/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	id := domain.SessionID(parts[0])

	switch parts[1] {
	case "next":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleNextQuestion(w, r, id)
	case "answers":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleSubmitAnswer(w, r, id)
	case "report":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleReport(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleInitiate(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.JD) == "" {
		badRequest(w, "jd is required")
		return
	}
	if strings.TrimSpace(req.Resume) == "" {
		badRequest(w, "resume is required")
		return
	}

	out, err := s.interviews.Initiate(r.Context(), interview.InitiateInput{
		JD:     req.JD,
		Resume: req.Resume,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, initResponse{
		SessionID: string(out.Session.ID),
		Prescreen: out.PrescreenNotes,
	})
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	question, err := s.interviews.FetchNextQuestion(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nextQuestionResponse{Question: question})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		badRequest(w, "answer is required")
		return
	}

	out, err := s.interviews.SubmitAnswer(r.Context(), id, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Finished:   out.Finished,
		Evaluation: out.Evaluation,
		Reason:     out.Reason,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	rep, err := s.reports.ProduceReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		InterviewLog: rep.InterviewLog,
		Summary:      rep.Summary,
		Status:       string(rep.Status),
		Strengths:    rep.Strengths,
		Weaknesses:   rep.Weaknesses,
		OverallScore: rep.OverallScore,
		HRReport:     rep.HRReport,
	})
}

// ─────────────────────────────────────────────
// HTTP helpers
// ─────────────────────────────────────────────

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, domain.ErrNoTranscript):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no transcript for session"})
	case errors.Is(err, domain.ErrGenerationUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to generate next question"})
	default:
		internalError(w, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
