package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/staffhub/internal/app/dao"
	"github.com/dalemusser/staffhub/internal/app/system/paging"
	"go.uber.org/zap"
)

// EvaluationQuery selects one page of a user's evaluations.
type EvaluationQuery struct {
	UserID   string
	Year     *int
	Page     int
	PageSize int
}

// EvaluationPage is one page of a user's evaluations, newest first.
type EvaluationPage struct {
	Data     []dao.EvaluationClient `json:"data"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
	Pages    int                    `json:"pages"`
}

// ListEvaluationsByUser pages the cached evaluations of one user. The
// user's bucket is hydrated from the store on the first call and served
// from memory afterwards.
func (s *Service) ListEvaluationsByUser(ctx context.Context, q EvaluationQuery) (EvaluationPage, error) {
	oid, err := parseID("user_id", q.UserID)
	if err != nil {
		return EvaluationPage{}, err
	}
	key := oid.Hex()

	rows, err := s.cache.LoadEvaluations(ctx, key, func(ctx context.Context) ([]dao.EvaluationServer, error) {
		docs, err := s.evaluations.ListByUser(ctx, oid, nil)
		if err != nil {
			return nil, err
		}
		return dao.EvaluationsToServer(docs), nil
	})
	if err != nil {
		return EvaluationPage{}, fmt.Errorf("list evaluations for %s: %w", key, err)
	}

	if q.Year != nil {
		kept := rows[:0]
		for _, e := range rows {
			if e.Year != nil && *e.Year == *q.Year {
				kept = append(kept, e)
			}
		}
		rows = kept
	}

	size := paging.ClampSize(q.PageSize, s.cfg.EvaluationPageSize, s.cfg.MaxPageSize)
	w := paging.Compute(len(rows), q.Page, size)
	return EvaluationPage{
		Data:     dao.EvaluationsToClient(paging.Slice(rows, w)),
		Total:    len(rows),
		Page:     w.Page,
		PageSize: w.Size,
		Pages:    w.Pages,
	}, nil
}

// FindEvaluationByID returns one evaluation from the store.
func (s *Service) FindEvaluationByID(ctx context.Context, id string) (dao.EvaluationClient, error) {
	oid, err := parseID("evaluation id", id)
	if err != nil {
		return dao.EvaluationClient{}, err
	}
	e, err := s.evaluations.GetByID(ctx, oid)
	if err != nil {
		return dao.EvaluationClient{}, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return dao.EvaluationToClient(dao.EvaluationToServer(e)), nil
}

// CreateEvaluation stores a new evaluation for an existing user and inserts
// it into that user's cached bucket at its sorted position.
func (s *Service) CreateEvaluation(ctx context.Context, p dao.EvaluationPatch) (dao.EvaluationClient, error) {
	userID, ok := p.UserID()
	if !ok {
		return dao.EvaluationClient{}, invalid("user_id", "is required")
	}
	e, err := p.Evaluation()
	if err != nil {
		return dao.EvaluationClient{}, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return dao.EvaluationClient{}, err
	}

	created, err := s.evaluations.Create(ctx, e)
	if err != nil {
		return dao.EvaluationClient{}, fmt.Errorf("create evaluation: %w", err)
	}

	srv := dao.EvaluationToServer(created)
	s.cache.AddEvaluationToCache(srv.UserID, srv)
	s.log.Info("evaluation created",
		zap.String("evaluation_id", srv.ID), zap.String("user_id", srv.UserID))
	return dao.EvaluationToClient(srv), nil
}

// UpdateEvaluation applies p to a stored evaluation. The owning user never
// changes; an empty patch returns the evaluation unchanged.
func (s *Service) UpdateEvaluation(ctx context.Context, id string, p dao.EvaluationPatch) (dao.EvaluationClient, error) {
	oid, err := parseID("evaluation id", id)
	if err != nil {
		return dao.EvaluationClient{}, err
	}
	if p.Len() == 0 {
		return s.FindEvaluationByID(ctx, id)
	}

	updated, err := s.evaluations.Update(ctx, oid, p.Set())
	if err != nil {
		return dao.EvaluationClient{}, fmt.Errorf("update evaluation %s: %w", id, err)
	}

	srv := dao.EvaluationToServer(updated)
	s.cache.UpdateEvaluationInCache(srv.UserID, srv)
	return dao.EvaluationToClient(srv), nil
}

// DeleteEvaluation removes an evaluation and reports whether one was
// deleted.
func (s *Service) DeleteEvaluation(ctx context.Context, id string) (bool, error) {
	oid, err := parseID("evaluation id", id)
	if err != nil {
		return false, err
	}

	// The owner is needed to find the cache bucket.
	e, err := s.evaluations.GetByID(ctx, oid)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete evaluation %s: %w", id, err)
	}

	deleted, err := s.evaluations.Delete(ctx, oid)
	if err != nil {
		return false, fmt.Errorf("delete evaluation %s: %w", id, err)
	}
	if deleted {
		s.cache.RemoveEvaluationFromCache(e.UserID.Hex(), oid.Hex())
	}
	return deleted, nil
}
