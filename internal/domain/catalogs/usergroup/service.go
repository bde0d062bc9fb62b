package usergroup

import (
	"context"
	"encoding/json"
	"fmt"

	"kontora/internal/core/apperror"
	"kontora/internal/domain"
	"kontora/internal/domain/catalogs/user"
	"kontora/internal/storage/kv"
	"kontora/pkg/logger"
)

// Service provides business logic for the UserGroup catalog, including
// membership management against the users collection.
type Service struct {
	*domain.Service[*UserGroup]

	users *user.Service
}

// NewService creates a new UserGroup service. Deleting a user refreshes
// the counts of every group the user belonged to.
func NewService(store kv.Store, users *user.Service, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*UserGroup]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "user group",
		New:        func() *UserGroup { return &UserGroup{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	s := &Service{Service: base, users: users}

	users.Hooks().On(domain.AfterDelete, func(ctx context.Context, u *user.User) error {
		for _, groupID := range u.Groups {
			if err := s.Recount(ctx, groupID); err != nil {
				logger.Warn(ctx, "group recount after user delete failed",
					"groupId", groupID, "error", err)
			}
		}
		return nil
	})

	return s
}

// Recount recomputes the group's member count from the users collection
// and persists the result.
func (s *Service) Recount(ctx context.Context, groupID string) error {
	group, err := s.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NewNotFound("user group", groupID)
	}

	count, err := s.countMembers(ctx, groupID)
	if err != nil {
		return err
	}

	if group.UserCount == count {
		return nil
	}
	patch, _ := json.Marshal(map[string]any{"userCount": count})
	_, err = s.Update(ctx, groupID, patch)
	return err
}

// AddUser adds the user to the group and refreshes the member count.
func (s *Service) AddUser(ctx context.Context, groupID, userID string) error {
	group, err := s.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NewNotFound("user group", groupID)
	}

	_, err = s.users.Mutate(ctx, userID, func(u *user.User) error {
		if u.MemberOf(groupID) {
			return nil
		}
		u.Groups = append(u.Groups, groupID)
		return nil
	})
	if err != nil {
		return err
	}
	return s.Recount(ctx, groupID)
}

// RemoveUser removes the user from the group and refreshes the member count.
func (s *Service) RemoveUser(ctx context.Context, groupID, userID string) error {
	group, err := s.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NewNotFound("user group", groupID)
	}

	_, err = s.users.Mutate(ctx, userID, func(u *user.User) error {
		kept := u.Groups[:0]
		for _, g := range u.Groups {
			if g != groupID {
				kept = append(kept, g)
			}
		}
		u.Groups = kept
		return nil
	})
	if err != nil {
		return err
	}
	return s.Recount(ctx, groupID)
}

// Delete removes the group and strips its id from every member's
// groups list.
func (s *Service) Delete(ctx context.Context, id string) error {
	group, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NewNotFound("user group", id)
	}

	members, err := s.users.All(ctx)
	if err != nil {
		return err
	}
	for _, u := range members {
		if !u.MemberOf(id) {
			continue
		}
		if _, err := s.users.Mutate(ctx, u.ID, func(m *user.User) error {
			kept := m.Groups[:0]
			for _, g := range m.Groups {
				if g != id {
					kept = append(kept, g)
				}
			}
			m.Groups = kept
			return nil
		}); err != nil {
			return fmt.Errorf("detach user %s from group %s: %w", u.ID, id, err)
		}
	}

	return s.Service.Delete(ctx, id)
}

// Members lists the users belonging to the group.
func (s *Service) Members(ctx context.Context, groupID string) ([]*user.User, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]*user.User, 0)
	for _, u := range all {
		if u.MemberOf(groupID) {
			members = append(members, u)
		}
	}
	return members, nil
}

func (s *Service) countMembers(ctx context.Context, groupID string) (int, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, u := range all {
		if u.MemberOf(groupID) {
			count++
		}
	}
	return count, nil
}
