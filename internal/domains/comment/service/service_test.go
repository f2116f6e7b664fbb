package service

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bpmodel "blog-backend/internal/domains/blogpost/model"
	"blog-backend/internal/domains/comment/model"
	"blog-backend/internal/shared/authz"
)

type fakeRepo struct {
	comments    []model.Comment
	createCalls int
}

func (f *fakeRepo) Create(_ context.Context, c *model.Comment) error {
	f.createCalls++
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, model.ErrCommentNotFound
}

func (f *fakeRepo) ListByPost(_ context.Context, postID uuid.UUID) ([]model.Comment, error) {
	out := []model.Comment{}
	for _, c := range f.comments {
		if c.BlogpostID == postID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.Comment, int, error) {
	out := []model.Comment{}
	for _, c := range f.comments {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	total := len(out)
	start := min(offset, total)
	return out[start:min(start+limit, total)], total, nil
}

type fakePosts struct {
	ids map[uuid.UUID]bool
}

func (f *fakePosts) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.ids[id], nil
}

func (f *fakePosts) Get(_ context.Context, _ authz.Principal, id uuid.UUID) (*bpmodel.PostDetail, error) {
	if !f.ids[id] {
		return nil, bpmodel.ErrPostNotFound
	}
	return &bpmodel.PostDetail{ID: id, Title: "Post"}, nil
}

var (
	postID = uuid.MustParse("5c0e2d1a-3b4f-4c6d-8e9f-0a1b2c3d4e01")
	userA  = uuid.MustParse("5c0e2d1a-3b4f-4c6d-8e9f-0a1b2c3d4e0a")
	userB  = uuid.MustParse("5c0e2d1a-3b4f-4c6d-8e9f-0a1b2c3d4e0b")

	alice = authz.Principal{UserID: userA.String(), Email: "alice@example.com", Groups: []string{"READERS"}}
	bob   = authz.Principal{UserID: userB.String(), Email: "bob@example.com", Groups: []string{"READERS"}}
)

func newService() (*commentService, *fakeRepo) {
	repo := &fakeRepo{}
	posts := &fakePosts{ids: map[uuid.UUID]bool{postID: true}}
	policy := authz.NewPolicy(authz.DefaultRules("AUTHORS", false)...)
	return NewCommentService(repo, posts, policy).(*commentService), repo
}

func TestCreateComment(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	t.Run("guest rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, authz.Guest(), postID, model.CreateCommentRequest{Comment: "hi"})
		assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	})

	t.Run("blank body rejected before repository", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, postID, model.CreateCommentRequest{Comment: "   \n\t"})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "comment")

		_, err = svc.Create(ctx, alice, postID, model.CreateCommentRequest{Comment: strings.Repeat("x", model.MaxCommentLength+1)})
		assert.Error(t, err)
		assert.Zero(t, repo.createCalls)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, uuid.New(), model.CreateCommentRequest{Comment: "hello"})
		assert.ErrorIs(t, err, model.ErrPostNotFound)
		assert.Zero(t, repo.createCalls)
	})

	t.Run("trimmed and owned", func(t *testing.T) {
		c, err := svc.Create(ctx, alice, postID, model.CreateCommentRequest{Comment: "  Nice post!  "})
		require.NoError(t, err)
		assert.Equal(t, "Nice post!", c.Comment)
		assert.Equal(t, userA, c.UserID)
		assert.Equal(t, postID, c.BlogpostID)
		assert.Equal(t, 1, repo.createCalls)
	})
}

func TestListByPostOldestFirst(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, who := range []authz.Principal{alice, bob, alice} {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := svc.Create(ctx, who, postID, model.CreateCommentRequest{Comment: who.Email})
		require.NoError(t, err)
	}

	_, err := svc.ListByPost(ctx, authz.Guest(), postID)
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)

	comments, err := svc.ListByPost(ctx, bob, postID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i := 1; i < len(comments); i++ {
		assert.False(t, comments[i].CreatedAt.Before(comments[i-1].CreatedAt))
	}
	assert.Equal(t, "alice@example.com", comments[0].Comment)

	_, err = svc.ListByPost(ctx, bob, uuid.New())
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestGetAndPostAccessor(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, alice, postID, model.CreateCommentRequest{Comment: "hello"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, bob, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = svc.Get(ctx, authz.Guest(), c.ID)
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)

	_, err = svc.Get(ctx, bob, uuid.New())
	assert.ErrorIs(t, err, model.ErrCommentNotFound)

	post, err := svc.Post(ctx, bob, c.ID)
	require.NoError(t, err)
	assert.Equal(t, postID, post.ID)
}

func TestListByUser(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for _, body := range []string{"one", "two"} {
		_, err := svc.Create(ctx, alice, postID, model.CreateCommentRequest{Comment: body})
		require.NoError(t, err)
	}

	comments, total, err := svc.ListByUser(ctx, bob, userA, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, comments, 1)

	_, _, err = svc.ListByUser(ctx, authz.Guest(), userA, 1, 20)
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
}
