package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

// Store implements both domain.SessionStore and domain.TranscriptStore on
// Firestore: one document per session under "interviews", transcript entries
// in a per-session subcollection ordered by creation time.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) interviewsCol() *firestore.CollectionRef {
	return s.client.Collection("interviews")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.interviewsCol().Doc(string(id))
}

func (s *Store) transcriptCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionDoc(sessionID).Collection("transcript")
}

type sessionDoc struct {
	JD              string    `firestore:"jd"`
	Resume          string    `firestore:"resume"`
	Questions       []string  `firestore:"questions"`
	Cursor          int       `firestore:"cursor"`
	StartedAt       time.Time `firestore:"started_at"`
	DeadlineSeconds int64     `firestore:"deadline_seconds"`
	State           string    `firestore:"state"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

type transcriptDoc struct {
	SessionID string    `firestore:"session_id"`
	Role      string    `firestore:"role"`
	Content   string    `firestore:"content"`
	CreatedAt time.Time `firestore:"created_at"`
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) Put(session *domain.Session) error {
	ctx := context.Background()

	doc := sessionDoc{
		JD:              session.JD,
		Resume:          session.Resume,
		Questions:       session.Questions,
		Cursor:          session.Cursor,
		StartedAt:       session.StartedAt,
		DeadlineSeconds: int64(session.Deadline / time.Second),
		State:           string(session.State),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}

	if _, err := s.sessionDoc(session.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore Put: %w", err)
	}
	return nil
}

func (s *Store) Get(id domain.SessionID) (*domain.Session, error) {
	ctx := context.Background()

	snap, err := s.sessionDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore Get: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get decode: %w", err)
	}

	return &domain.Session{
		ID:        id,
		JD:        doc.JD,
		Resume:    doc.Resume,
		Questions: doc.Questions,
		Cursor:    doc.Cursor,
		StartedAt: doc.StartedAt,
		Deadline:  time.Duration(doc.DeadlineSeconds) * time.Second,
		State:     domain.SessionState(doc.State),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *Store) Delete(id domain.SessionID) error {
	ctx := context.Background()

	if _, err := s.sessionDoc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore Delete: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// TranscriptStore implementation
// ─────────────────────────────────────────

func (s *Store) Append(entry *domain.TranscriptEntry) error {
	ctx := context.Background()

	doc := transcriptDoc{
		SessionID: string(entry.SessionID),
		Role:      string(entry.Role),
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
	}

	if _, err := s.transcriptCol(entry.SessionID).Doc(string(entry.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore Append: %w", err)
	}
	return nil
}

func (s *Store) ReadAll(sessionID domain.SessionID) ([]*domain.TranscriptEntry, error) {
	ctx := context.Background()

	iter := s.transcriptCol(sessionID).OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.TranscriptEntry
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ReadAll: %w", err)
		}

		var doc transcriptDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode transcriptDoc: %w", err)
		}

		out = append(out, &domain.TranscriptEntry{
			ID:        domain.EntryID(snap.Ref.ID),
			SessionID: sessionID,
			Role:      domain.Role(doc.Role),
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}
