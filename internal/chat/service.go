package chat

import (
	"context"
	"errors"
	"log"

	"github.com/Atika-Amin/Shastho-Shohay/internal/session"
	"github.com/Atika-Amin/Shastho-Shohay/internal/triage"
)

// ErrSessionNotFound is returned for unknown or evicted session IDs.
var ErrSessionNotFound = errors.New("session not found")

type Service interface {
	Greeting() string
	StartSession(ctx context.Context) (sessionID, greeting string, err error)
	Chat(ctx context.Context, sessionID, message string) (string, error)
	Reset(ctx context.Context, sessionID string) error
	Transcript(ctx context.Context, sessionID string) ([]Message, error)
}

type service struct {
	sessions *session.Manager
	repo     Repository // nil when running without a database
}

func NewService(sessions *session.Manager, repo Repository) Service {
	return &service{sessions: sessions, repo: repo}
}

func (s *service) Greeting() string {
	return triage.Intro
}

func (s *service) StartSession(ctx context.Context) (string, string, error) {
	sess := s.sessions.Create()
	greeting := sess.Do(func(b *triage.Bot) string { return b.Greet() })
	s.logMessage(ctx, sess.ID, RoleBot, greeting)
	return sess.ID, greeting, nil
}

func (s *service) Chat(ctx context.Context, sessionID, message string) (string, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}

	reply := sess.Do(func(b *triage.Bot) string { return b.Handle(message) })

	s.logMessage(ctx, sessionID, RolePatient, message)
	s.logMessage(ctx, sessionID, RoleBot, reply)
	return reply, nil
}

func (s *service) Reset(ctx context.Context, sessionID string) error {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	sess.Do(func(b *triage.Bot) string {
		b.Reset()
		return ""
	})
	return nil
}

func (s *service) Transcript(ctx context.Context, sessionID string) ([]Message, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.Transcript(ctx, sessionID)
}

// logMessage appends to the transcript log. Log failures never fail a turn.
func (s *service) logMessage(ctx context.Context, sessionID string, role MessageRole, content string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveMessage(ctx, sessionID, role, content); err != nil {
		log.Printf("failed to log %s message for session %s: %v", role, sessionID, err)
	}
}
