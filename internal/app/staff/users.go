package staff

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/staffhub/internal/app/dao"
	"github.com/dalemusser/staffhub/internal/app/system/paging"
	"github.com/dalemusser/staffhub/internal/app/system/search"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// User list orderings accepted by ListUsers.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortLastName = "last_name"
)

// UserQuery filters and pages the user list. Zero values mean "no filter".
type UserQuery struct {
	Search   string
	Roles    []string // exact role names
	Statuses []string // matched ignoring case
	Sort     string
	Page     int
	Limit    int
}

// UserPage is one page of the filtered user list.
type UserPage struct {
	Data     []dao.UserClient `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Pages    int              `json:"pages"`
}

func (s *Service) loadUsers(ctx context.Context) ([]dao.UserServer, error) {
	return s.cache.LoadUsers(ctx, func(ctx context.Context) ([]dao.UserServer, error) {
		docs, err := s.users.All(ctx)
		if err != nil {
			return nil, err
		}
		return dao.UsersToServer(docs), nil
	})
}

// GetByID returns one user from the store.
func (s *Service) GetByID(ctx context.Context, id string) (dao.UserClient, error) {
	oid, err := parseID("user id", id)
	if err != nil {
		return dao.UserClient{}, err
	}
	u, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return dao.UserClient{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return dao.UserToClient(dao.UserToServer(u)), nil
}

// ListUsers filters and pages the cached user list, hydrating it from the
// store on the first call.
func (s *Service) ListUsers(ctx context.Context, q UserQuery) (UserPage, error) {
	rows, err := s.loadUsers(ctx)
	if err != nil {
		return UserPage{}, fmt.Errorf("list users: %w", err)
	}

	filtered := filterUsers(rows, q)
	sortUsers(filtered, q.Sort)

	size := paging.ClampSize(q.Limit, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	w := paging.Compute(len(filtered), q.Page, size)
	return UserPage{
		Data:     dao.UsersToClient(paging.Slice(filtered, w)),
		Total:    len(filtered),
		Page:     w.Page,
		PageSize: w.Size,
		Pages:    w.Pages,
	}, nil
}

// filterUsers applies search, role and status filters. Search matches a
// substring of first name, last name or either email, or the exact mav id.
func filterUsers(rows []dao.UserServer, q UserQuery) []dao.UserServer {
	needle := search.Fold(q.Search)
	raw := strings.TrimSpace(q.Search)

	out := make([]dao.UserServer, 0, len(rows))
	for _, u := range rows {
		if needle != "" {
			mavMatch := u.MavID != nil && strconv.FormatInt(*u.MavID, 10) == raw
			if !mavMatch && !search.AnyContains(needle, u.FirstName, u.LastName, u.StudentEmail, u.WorkEmail) {
				continue
			}
		}
		if len(q.Roles) > 0 {
			if u.RolePosition == nil || !containsString(q.Roles, string(*u.RolePosition)) {
				continue
			}
		}
		if len(q.Statuses) > 0 {
			if u.Status == nil || !search.EqualsAnyFold(string(*u.Status), q.Statuses...) {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sortUsers reorders rows in place. The cache already holds newest first.
func sortUsers(rows []dao.UserServer, by string) {
	switch by {
	case SortOldest:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		})
	case SortLastName:
		key := func(u dao.UserServer) string {
			var last, first string
			if u.LastName != nil {
				last = *u.LastName
			}
			if u.FirstName != nil {
				first = *u.FirstName
			}
			return search.Fold(last) + "\x00" + search.Fold(first)
		}
		sort.SliceStable(rows, func(i, j int) bool { return key(rows[i]) < key(rows[j]) })
	}
}

// stamp records the acting identity unless the caller set updated_by.
func (s *Service) stamp(ctx context.Context, p dao.UserPatch) dao.UserPatch {
	if p.Has("updated_by") {
		return p
	}
	return p.With("updated_by", s.actorName(ctx))
}

// CreateUser stores a new user built from p and adds it to the head of the
// cached list.
func (s *Service) CreateUser(ctx context.Context, p dao.UserPatch) (dao.UserClient, error) {
	u, err := s.stamp(ctx, p).User()
	if err != nil {
		return dao.UserClient{}, err
	}
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return dao.UserClient{}, fmt.Errorf("create user: %w", err)
	}

	srv := dao.UserToServer(created)
	s.cache.AddUserToCache(srv)
	s.log.Info("user created", zap.String("user_id", srv.ID))
	return dao.UserToClient(srv), nil
}

// UpdateUserByID applies p to a stored user. Fields p does not mention are
// left untouched; an empty patch returns the user unchanged.
func (s *Service) UpdateUserByID(ctx context.Context, id string, p dao.UserPatch) (dao.UserClient, error) {
	oid, err := parseID("user id", id)
	if err != nil {
		return dao.UserClient{}, err
	}
	if p.Len() == 0 {
		return s.GetByID(ctx, id)
	}

	updated, err := s.users.Update(ctx, oid, s.stamp(ctx, p).Set())
	if err != nil {
		return dao.UserClient{}, fmt.Errorf("update user %s: %w", id, err)
	}

	srv := dao.UserToServer(updated)
	s.cache.UpdateUserInCache(srv)
	return dao.UserToClient(srv), nil
}

// UpsertUserByMavID writes p to the user holding mavID, creating one when
// none exists. It reports whether a user was created.
func (s *Service) UpsertUserByMavID(ctx context.Context, mavID int64, p dao.UserPatch) (dao.UserClient, bool, error) {
	if mavID < 0 {
		return dao.UserClient{}, false, invalid("mav_id", "must be a non-negative integer")
	}

	u, created, err := s.users.UpsertByMavID(ctx, mavID, s.stamp(ctx, p).Set())
	if err != nil {
		return dao.UserClient{}, false, fmt.Errorf("upsert user mav_id %d: %w", mavID, err)
	}

	srv := dao.UserToServer(u)
	if created {
		s.cache.AddUserToCache(srv)
	} else {
		s.cache.UpdateUserInCache(srv)
	}
	return dao.UserToClient(srv), created, nil
}

// DeleteUserByID removes a user and reports whether one was deleted. The
// user's evaluations and metrics stay in the store.
func (s *Service) DeleteUserByID(ctx context.Context, id string) (bool, error) {
	oid, err := parseID("user id", id)
	if err != nil {
		return false, err
	}
	deleted, err := s.users.Delete(ctx, oid)
	if err != nil {
		return false, fmt.Errorf("delete user %s: %w", id, err)
	}
	if deleted {
		s.cache.RemoveUserFromCache(id)
		s.cache.InvalidateEvaluations(id)
		s.log.Info("user deleted", zap.String("user_id", id))
	}
	return deleted, nil
}

// RefreshUsers reloads the whole user list from the store into the cache
// and returns how many users it holds. Evaluation buckets are dropped and
// reload on their next read.
func (s *Service) RefreshUsers(ctx context.Context) (int, error) {
	docs, err := s.users.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh users: %w", err)
	}
	s.cache.SetCachedUsers(dao.UsersToServer(docs))
	s.cache.ClearEvaluations()
	s.log.Info("user cache refreshed", zap.Int("count", len(docs)))
	return len(docs), nil
}

// requireUser maps a missing user to ErrNotFound.
func (s *Service) requireUser(ctx context.Context, oid primitive.ObjectID) error {
	ok, err := s.users.Exists(ctx, oid)
	if err != nil {
		return fmt.Errorf("check user %s: %w", oid.Hex(), err)
	}
	if !ok {
		return fmt.Errorf("user %s: %w", oid.Hex(), ErrNotFound)
	}
	return nil
}
