package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	MessageStatusUnread  MessageStatus = "unread"
	MessageStatusRead    MessageStatus = "read"
	MessageStatusReplied MessageStatus = "replied"
)

type Message struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	UserID    *uuid.UUID    `db:"user_id" json:"user_id,omitempty"`
	Name      string        `db:"name" json:"name"`
	Email     string        `db:"email" json:"email"`
	Subject   string        `db:"subject" json:"subject"`
	Content   string        `db:"content" json:"content"`
	Reply     *string       `db:"reply" json:"reply,omitempty"`
	Status    MessageStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}
