// Package notification records per-client notification entries.
package notification

import (
	"context"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain"
	"kontora/internal/domain/filter"
	"kontora/internal/storage/kv"
)

const CollectionPrefix = "notifications"

// Level classifies the notification severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one message addressed to a client.
type Notification struct {
	entity.Base

	ClientID string `json:"clientId"`
	Level    Level  `json:"level"`
	Message  string `json:"message"`
	Read     bool   `json:"read"`
}

func (n *Notification) Validate(ctx context.Context) error {
	if n.ClientID == "" {
		return apperror.NewValidation("client id is required").
			WithDetail("field", "clientId")
	}
	if n.Message == "" {
		return apperror.NewValidation("message is required").
			WithDetail("field", "message")
	}
	switch n.Level {
	case LevelInfo, LevelWarning, LevelError:
	default:
		return apperror.NewValidation("invalid notification level").
			WithDetail("field", "level").
			WithDetail("value", string(n.Level))
	}
	return nil
}

func (n *Notification) FilterTarget() filter.Target {
	return filter.Target{
		Text: []string{n.Message},
		Type: string(n.Level),
		Date: n.CreatedAt,
	}
}

// Service provides access to the notifications register.
type Service struct {
	*domain.Service[*Notification]
}

func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Notification]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "notification",
		New:        func() *Notification { return &Notification{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// MarkRead flags the notification as read.
func (s *Service) MarkRead(ctx context.Context, notificationID string) (*Notification, error) {
	return s.Mutate(ctx, notificationID, func(n *Notification) error {
		n.Read = true
		return nil
	})
}

// ByClient lists notifications addressed to the client.
func (s *Service) ByClient(ctx context.Context, clientID string) ([]*Notification, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*Notification, 0)
	for _, n := range all {
		if n.ClientID == clientID {
			matched = append(matched, n)
		}
	}
	return matched, nil
}
