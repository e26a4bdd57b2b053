package gmail

import (
	"context"
	"fmt"
	"time"

	"jobtrack-backend/internal/shared/telemetry"
)

const defaultMaxResults = 50

// Service searches the connected mailbox.
type Service struct {
	Auth *Auth
}

// NewService constructs a Service.
func NewService(auth *Auth) *Service {
	return &Service{Auth: auth}
}

// Search lists messages matching the companies/keywords query and fetches
// each in full. Messages that fail to fetch are skipped, not fatal.
func (s *Service) Search(ctx context.Context, companies, keywords []string, maxResults int64, after time.Time) ([]Message, error) {
	if s.Auth == nil {
		return nil, ErrNotConfigured
	}
	svc, err := s.Auth.Service(ctx)
	if err != nil {
		return nil, err
	}

	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	if maxResults <= 0 || maxResults > defaultMaxResults {
		maxResults = defaultMaxResults
	}
	query := BuildQuery(CompanyDomains(companies), keywords, after)

	list, err := svc.Users.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]Message, 0, len(list.Messages))
	for _, ref := range list.Messages {
		full, err := svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			telemetry.Error("gmail.fetch_message_failed", map[string]any{
				"message_id": ref.Id,
				"error":      err.Error(),
			})
			continue
		}
		messages = append(messages, parseMessage(full))
	}
	return messages, nil
}
