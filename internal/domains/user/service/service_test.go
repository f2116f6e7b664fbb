package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bpmodel "blog-backend/internal/domains/blogpost/model"
	cmodel "blog-backend/internal/domains/comment/model"
	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/infrastructure/queue/queuetest"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/authz"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
)

type fakeRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteAccount(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakePosts struct {
	invalidated int
	lastUser    uuid.UUID
}

func (f *fakePosts) ListByUser(_ context.Context, _ authz.Principal, userID uuid.UUID, page, limit int) (*bpmodel.PostPage, error) {
	f.lastUser = userID
	return &bpmodel.PostPage{Posts: []bpmodel.PostSummary{}, Page: page, Limit: limit}, nil
}

func (f *fakePosts) InvalidateFeed(context.Context) { f.invalidated++ }

type fakeComments struct{}

func (fakeComments) ListByUser(context.Context, authz.Principal, uuid.UUID, int, int) ([]cmodel.Comment, int, error) {
	return []cmodel.Comment{}, 0, nil
}

var ownerID = uuid.MustParse("0d6c3f5e-2b1a-4c7d-9e8f-112233445566")

type fixture struct {
	svc   *userService
	repo  *fakeRepo
	posts *fakePosts
	queue *queuetest.Recorder
	cache *cache.MemoryCache
	owner authz.Principal
}

func newFixture() *fixture {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{users: map[uuid.UUID]*model.User{
		ownerID: {ID: ownerID, Email: "me@example.com", FirstName: "Grace", LastName: "Hopper"},
	}}
	posts := &fakePosts{}
	q := &queuetest.Recorder{}
	c := cache.NewMemoryCache()
	policy := authz.NewPolicy(authz.DefaultRules("AUTHORS", false)...)

	svc := NewUserService(repo, posts, fakeComments{}, policy, c, q).(*userService)
	svc.now = func() time.Time { return now }

	return &fixture{
		svc:   svc,
		repo:  repo,
		posts: posts,
		queue: q,
		cache: c,
		owner: authz.Principal{
			UserID:    ownerID.String(),
			Email:     "me@example.com",
			Groups:    []string{"READERS"},
			TokenID:   "jti-1",
			ExpiresAt: now.Add(10 * time.Minute),
		},
	}
}

func TestGetMe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.svc.GetMe(ctx, f.owner)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", u.DisplayName())

	_, err = f.svc.GetMe(ctx, authz.Guest())
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)

	stranger := authz.Principal{UserID: uuid.NewString(), Groups: []string{"READERS"}}
	_, err = f.svc.GetMe(ctx, stranger)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUpdateMe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	u, err := f.svc.UpdateMe(ctx, f.owner, model.UpdateUserRequest{FirstName: "  Ada ", LastName: "Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "Ada", f.repo.users[ownerID].FirstName)
	assert.Equal(t, 1, f.posts.invalidated)

	long := make([]rune, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err = f.svc.UpdateMe(ctx, f.owner, model.UpdateUserRequest{FirstName: string(long)})
	assert.Error(t, err)
}

func TestDeleteMe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteMe(ctx, f.owner))

	_, ok := f.repo.users[ownerID]
	assert.False(t, ok)

	tasks := f.queue.Tasks(shared.TypeRemoveUserMedia)
	require.Len(t, tasks, 1)
	assert.JSONEq(t, `{"userId":"`+ownerID.String()+`"}`, string(tasks[0].Payload))

	revoked, err := f.cache.Exists(ctx, jwt.RevocationKey("jti-1"))
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 1, f.posts.invalidated)

	assert.ErrorIs(t, f.svc.DeleteMe(ctx, f.owner), model.ErrUserNotFound)
}

func TestLazyCollections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	page, err := f.svc.Posts(ctx, f.owner, ownerID, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, ownerID, f.posts.lastUser)
	assert.Equal(t, 2, page.Page)

	comments, total, err := f.svc.Comments(ctx, f.owner, ownerID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.Zero(t, total)
}
