package cache

import (
	"context"

	"github.com/dalemusser/staffhub/internal/app/dao"
	"go.uber.org/zap"
)

// usersKey is the single bucket holding every user.
const usersKey = "all"

// Service is the process-wide cache, built once at startup and handed to
// the staff service and handlers.
type Service struct {
	users       *Bucketed[dao.UserServer]
	evaluations *Bucketed[dao.EvaluationServer]
	log         *zap.Logger
}

// evaluationLess orders evaluations newest first by evaluation date, then
// by creation time.
func evaluationLess(a, b dao.EvaluationServer) bool {
	if !a.EvaluationDate.Equal(b.EvaluationDate) {
		return a.EvaluationDate.After(b.EvaluationDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// NewService returns an empty cache.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:       NewBucketed(func(u dao.UserServer) string { return u.ID }, nil),
		evaluations: NewBucketed(func(e dao.EvaluationServer) string { return e.ID }, evaluationLess),
		log:         logger,
	}
}

// ---- users ----

// GetCachedUsers returns the cached users and whether the bucket is hydrated.
func (s *Service) GetCachedUsers() ([]dao.UserServer, bool) {
	return s.users.Get(usersKey)
}

// SetCachedUsers replaces the user bucket.
func (s *Service) SetCachedUsers(users []dao.UserServer) {
	s.users.Set(usersKey, users)
}

// AddUserToCache puts a newly created user at the head of the list.
func (s *Service) AddUserToCache(u dao.UserServer) {
	if !s.users.Insert(usersKey, u) {
		s.log.Debug("user cache not hydrated; insert skipped", zap.String("user_id", u.ID))
	}
}

// UpdateUserInCache replaces a user in place.
func (s *Service) UpdateUserInCache(u dao.UserServer) {
	s.users.Update(usersKey, u)
}

// RemoveUserFromCache drops a user.
func (s *Service) RemoveUserFromCache(id string) {
	s.users.Remove(usersKey, id)
}

// UsersState reports the state of the user bucket.
func (s *Service) UsersState() State {
	return s.users.State(usersKey)
}

// LoadUsers returns the cached users, hydrating from load on a miss.
func (s *Service) LoadUsers(ctx context.Context, load Loader[dao.UserServer]) ([]dao.UserServer, error) {
	rows, loaded, err := s.users.Load(ctx, usersKey, load)
	if err != nil {
		return nil, err
	}
	if loaded {
		s.log.Info("user cache hydrated", zap.Int("count", len(rows)))
	}
	return rows, nil
}

// ---- evaluations ----

// GetCachedEvaluations returns the cached evaluations for a user and
// whether that bucket is hydrated.
func (s *Service) GetCachedEvaluations(userID string) ([]dao.EvaluationServer, bool) {
	return s.evaluations.Get(userID)
}

// SetCachedEvaluations replaces a user's evaluation bucket.
func (s *Service) SetCachedEvaluations(userID string, list []dao.EvaluationServer) {
	s.evaluations.Set(userID, list)
}

// AddEvaluationToCache inserts an evaluation at its sorted position.
func (s *Service) AddEvaluationToCache(userID string, e dao.EvaluationServer) {
	if !s.evaluations.Insert(userID, e) {
		s.log.Debug("evaluation cache not hydrated; insert skipped",
			zap.String("user_id", userID), zap.String("evaluation_id", e.ID))
	}
}

// UpdateEvaluationInCache replaces an evaluation and re-sorts the bucket.
func (s *Service) UpdateEvaluationInCache(userID string, e dao.EvaluationServer) {
	s.evaluations.Update(userID, e)
}

// RemoveEvaluationFromCache drops an evaluation from a user's bucket.
func (s *Service) RemoveEvaluationFromCache(userID, id string) {
	s.evaluations.Remove(userID, id)
}

// EvaluationsState reports the state of a user's evaluation bucket.
func (s *Service) EvaluationsState(userID string) State {
	return s.evaluations.State(userID)
}

// InvalidateEvaluations forces the next read of a user's evaluations to
// reload from the store.
func (s *Service) InvalidateEvaluations(userID string) {
	s.evaluations.Invalidate(userID)
}

// ClearEvaluations unhydrates every evaluation bucket.
func (s *Service) ClearEvaluations() {
	s.evaluations.Clear()
}

// LoadEvaluations returns a user's cached evaluations, hydrating from load
// on a miss.
func (s *Service) LoadEvaluations(ctx context.Context, userID string, load Loader[dao.EvaluationServer]) ([]dao.EvaluationServer, error) {
	rows, loaded, err := s.evaluations.Load(ctx, userID, load)
	if err != nil {
		return nil, err
	}
	if loaded {
		s.log.Info("evaluation cache hydrated",
			zap.String("user_id", userID), zap.Int("count", len(rows)))
	}
	return rows, nil
}
