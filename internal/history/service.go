package history

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type service struct {
	repo Repo
	log  *zap.Logger
}

func NewService(repo Repo, log *zap.Logger) Service {
	return &service{repo: repo, log: log.Named("history")}
}

func (s *service) Save(ctx context.Context, userID, query, response string, metadata map[string]any) (*Turn, error) {
	turn := &Turn{
		UserID:    userID,
		Query:     query,
		Response:  response,
		Source:    DefaultSource,
		Page:      DefaultPage,
		CreatedAt: time.Now().UTC(),
	}
	if metadata != nil {
		if src, ok := metadata["source"].(string); ok && src != "" {
			turn.Source = src
		}
		if page, ok := metadata["page"].(string); ok && page != "" {
			turn.Page = page
		}
	}

	if err := s.repo.Save(ctx, turn); err != nil {
		return nil, err
	}
	s.log.Debug("turn saved", zap.String("id", turn.ID), zap.String("page", turn.Page))
	return turn, nil
}

func (s *service) List(ctx context.Context, userID string, limit int, before time.Time) ([]Turn, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if before.IsZero() {
		before = time.Now().UTC()
	}
	return s.repo.List(ctx, userID, limit, before)
}

func (s *service) DeleteAll(ctx context.Context, userID string) (int64, error) {
	return s.repo.DeleteAll(ctx, userID)
}

func (s *service) Count(ctx context.Context, userID string) (int64, error) {
	return s.repo.Count(ctx, userID)
}
