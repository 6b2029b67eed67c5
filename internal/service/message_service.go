package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/repository/ports"
)

var (
	ErrMessageValidation = errors.New("message validation failed")
	ErrMessageNotFound   = errors.New("message not found")
)

type MessageService struct {
	messages ports.MessageRepository
}

func NewMessageService(messageRepo ports.MessageRepository) *MessageService {
	return &MessageService{messages: messageRepo}
}

// Submit records a contact-form message. UserID is set when the sender was
// authenticated, nil for anonymous visitors.
func (s *MessageService) Submit(ctx context.Context, name, email, subject, content string, userID *uuid.UUID) (*domain.Message, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	subject = strings.TrimSpace(subject)
	content = strings.TrimSpace(content)

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name required", ErrMessageValidation)
	case email == "" || !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: valid email required", ErrMessageValidation)
	case subject == "":
		return nil, fmt.Errorf("%w: subject required", ErrMessageValidation)
	case content == "":
		return nil, fmt.Errorf("%w: content required", ErrMessageValidation)
	}

	return s.messages.Create(ctx, &domain.Message{
		UserID:  userID,
		Name:    name,
		Email:   email,
		Subject: subject,
		Content: content,
		Status:  domain.MessageStatusUnread,
	})
}

func (s *MessageService) ListAll(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}

func (s *MessageService) Reply(ctx context.Context, id uuid.UUID, reply string) (*domain.Message, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: reply cannot be empty", ErrMessageValidation)
	}
	message, err := s.messages.SetReply(ctx, id, reply)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	// Replied messages stay replied.
	if message.Status != domain.MessageStatusUnread {
		return message, nil
	}
	updated, err := s.messages.SetStatus(ctx, id, domain.MessageStatusRead)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrMessageNotFound
		}
		return err
	}
	return nil
}
