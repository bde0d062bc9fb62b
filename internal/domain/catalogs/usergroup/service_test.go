package usergroup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/core/apperror"
	"kontora/internal/core/id"
	"kontora/internal/domain"
	"kontora/internal/domain/catalogs/user"
	"kontora/internal/domain/catalogs/usergroup"
	"kontora/internal/storage/kv"
)

func setup(t *testing.T) (*user.Service, *usergroup.Service) {
	t.Helper()
	store := kv.NewMemory()
	users := user.NewService(store, domain.Options{IDs: &id.Sequence{Prefix: "user"}})
	groups := usergroup.NewService(store, users, domain.Options{IDs: &id.Sequence{Prefix: "group"}})
	return users, groups
}

func newUser(name string, groupIDs ...string) *user.User {
	return &user.User{
		Name:   name,
		Email:  name + "@corp.test",
		Status: user.StatusActive,
		Groups: groupIDs,
	}
}

func TestRecountDerivesFromUsers(t *testing.T) {
	users, groups := setup(t)
	ctx := context.Background()

	g := &usergroup.UserGroup{Name: "admins"}
	require.NoError(t, groups.Create(ctx, g))

	require.NoError(t, users.Create(ctx, newUser("alice", g.ID)))
	require.NoError(t, users.Create(ctx, newUser("bob", g.ID)))
	require.NoError(t, users.Create(ctx, newUser("carol")))

	require.NoError(t, groups.Recount(ctx, g.ID))

	got, err := groups.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UserCount)
}

func TestMembershipAddRemove(t *testing.T) {
	users, groups := setup(t)
	ctx := context.Background()

	g := &usergroup.UserGroup{Name: "ops"}
	require.NoError(t, groups.Create(ctx, g))

	u := newUser("dave")
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, groups.AddUser(ctx, g.ID, u.ID))

	got, err := groups.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UserCount)

	member, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, member.MemberOf(g.ID))

	// Adding twice is a no-op.
	require.NoError(t, groups.AddUser(ctx, g.ID, u.ID))
	member, err = users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, member.Groups, 1)

	require.NoError(t, groups.RemoveUser(ctx, g.ID, u.ID))

	got, err = groups.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Zero(t, got.UserCount)
}

func TestUserDeleteRefreshesCounts(t *testing.T) {
	users, groups := setup(t)
	ctx := context.Background()

	g := &usergroup.UserGroup{Name: "sales"}
	require.NoError(t, groups.Create(ctx, g))

	u := newUser("erin", g.ID)
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, groups.Recount(ctx, g.ID))

	require.NoError(t, users.Delete(ctx, u.ID))

	got, err := groups.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Zero(t, got.UserCount)
}

func TestGroupDeleteDetachesMembers(t *testing.T) {
	users, groups := setup(t)
	ctx := context.Background()

	g := &usergroup.UserGroup{Name: "legacy"}
	require.NoError(t, groups.Create(ctx, g))
	keep := &usergroup.UserGroup{Name: "kept"}
	require.NoError(t, groups.Create(ctx, keep))

	u := newUser("frank", g.ID, keep.ID)
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, groups.Delete(ctx, g.ID))

	gone, err := groups.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	member, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, member.MemberOf(g.ID))
	assert.True(t, member.MemberOf(keep.ID), "other memberships survive")
}

func TestMembershipAgainstMissingGroup(t *testing.T) {
	_, groups := setup(t)
	ctx := context.Background()

	assert.True(t, apperror.IsNotFound(groups.AddUser(ctx, "missing", "user-1")))
	assert.True(t, apperror.IsNotFound(groups.Recount(ctx, "missing")))
}
