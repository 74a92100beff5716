package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/staffhub/internal/app/dao"
	"github.com/dalemusser/staffhub/internal/app/system/txn"
	"github.com/dalemusser/staffhub/internal/domain/models"
	"go.uber.org/zap"
)

// AddMetric records a merit or demerit for a user and appends its id to the
// user's merits or demerits list. Both writes commit together inside a
// transaction. Without transaction support the metric is written first and
// deleted again if the push fails; if that delete fails too the result is a
// *PartialFailureError.
func (s *Service) AddMetric(ctx context.Context, userID string, in dao.MetricInput) (dao.MetricClient, error) {
	oid, err := parseID("user id", userID)
	if err != nil {
		return dao.MetricClient{}, err
	}
	if in.Commenter == "" {
		in.Commenter = s.actorName(ctx)
	}
	m := models.Metric{
		UserID:         oid,
		MetricType:     in.MetricType,
		Comment:        in.Comment,
		Commenter:      in.Commenter,
		CommenterEmail: in.CommenterEmail,
	}
	if err := m.Validate(); err != nil {
		return dao.MetricClient{}, err
	}
	if err := s.requireUser(ctx, oid); err != nil {
		return dao.MetricClient{}, err
	}

	var (
		created models.Metric
		user    models.User
	)
	if s.tx != nil {
		err = s.tx.Run(ctx, func(ctx context.Context) error {
			var err error
			if created, err = s.metrics.Create(ctx, m); err != nil {
				return err
			}
			user, err = s.users.PushMetric(ctx, oid, m.MetricType, created.ID)
			return err
		})
		if errors.Is(err, txn.ErrNotSupported) {
			s.log.Debug("transactions unavailable; adding metric without one")
			created, user, err = s.addMetricSaga(ctx, m)
		}
	} else {
		created, user, err = s.addMetricSaga(ctx, m)
	}
	if err != nil {
		if IsPartialFailure(err) {
			return dao.MetricClient{}, err
		}
		return dao.MetricClient{}, fmt.Errorf("add metric for %s: %w", userID, err)
	}

	s.cache.UpdateUserInCache(dao.UserToServer(user))
	s.log.Info("metric added",
		zap.String("user_id", userID),
		zap.String("metric_id", created.ID.Hex()),
		zap.String("metric_type", string(created.MetricType)))
	return dao.MetricToClient(created), nil
}

// addMetricSaga writes the metric, then pushes it onto the user, deleting
// the metric again when the push fails.
func (s *Service) addMetricSaga(ctx context.Context, m models.Metric) (models.Metric, models.User, error) {
	created, err := s.metrics.Create(ctx, m)
	if err != nil {
		return models.Metric{}, models.User{}, err
	}

	user, err := s.users.PushMetric(ctx, m.UserID, m.MetricType, created.ID)
	if err == nil {
		return created, user, nil
	}

	if derr := s.metrics.Delete(ctx, created.ID); derr != nil {
		pf := &PartialFailureError{
			Op:           "add metric",
			Committed:    "metric " + created.ID.Hex(),
			Err:          err,
			Compensation: derr,
		}
		s.log.Error("metric left without user reference",
			zap.String("user_id", m.UserID.Hex()),
			zap.String("metric_id", created.ID.Hex()),
			zap.Error(pf))
		return models.Metric{}, models.User{}, pf
	}
	s.log.Warn("metric push failed; metric removed",
		zap.String("user_id", m.UserID.Hex()), zap.Error(err))
	return models.Metric{}, models.User{}, err
}

// ListMetrics returns a user's merits and demerits, newest first.
func (s *Service) ListMetrics(ctx context.Context, userID string) ([]dao.MetricClient, error) {
	oid, err := parseID("user id", userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, oid); err != nil {
		return nil, err
	}
	ms, err := s.metrics.ListByUser(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("list metrics for %s: %w", userID, err)
	}
	return dao.MetricsToClient(ms), nil
}
