package service

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/blogpost/model"
	catmodel "blog-backend/internal/domains/category/model"
	"blog-backend/internal/shared/authz"
	"blog-backend/pkg/cache"
)

// =====================================================
// FAKES
// =====================================================

type fakeRepo struct {
	posts       []model.Blogpost
	names       map[uuid.UUID]string
	createCalls int
	listCalls   int
}

func (f *fakeRepo) List(_ context.Context, filter model.ListFilter) ([]model.Blogpost, int, error) {
	f.listCalls++
	var out []model.Blogpost
	for _, p := range f.posts {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.UserID != nil && (p.UserID == nil || *p.UserID != *filter.UserID) {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Blogpost) int { return b.CreatedAt.Compare(a.CreatedAt) })
	total := len(out)
	start := min(filter.Offset(), total)
	end := min(start+filter.Limit, total)
	return out[start:end], total, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Blogpost, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, model.ErrPostNotFound
}

func (f *fakeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := f.FindByID(ctx, id)
	return err == nil, nil
}

func (f *fakeRepo) Create(_ context.Context, p *model.Blogpost) error {
	f.createCalls++
	f.posts = append(f.posts, *p)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, p *model.Blogpost) error {
	for i := range f.posts {
		if f.posts[i].ID == p.ID {
			f.posts[i] = *p
			return nil
		}
	}
	return model.ErrPostNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	before := len(f.posts)
	f.posts = slices.DeleteFunc(f.posts, func(p model.Blogpost) bool { return p.ID == id })
	if len(f.posts) == before {
		return model.ErrPostNotFound
	}
	return nil
}

func (f *fakeRepo) Author(ctx context.Context, id uuid.UUID) (*model.AuthorRef, error) {
	p, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.AuthorRef{ID: p.UserID, DisplayName: p.AuthorName}, nil
}

func (f *fakeRepo) DisplayName(_ context.Context, userID uuid.UUID) (string, error) {
	return f.names[userID], nil
}

type fakeCategories struct {
	names       []string
	invalidated int
}

func (f *fakeCategories) List(context.Context, authz.Principal) ([]catmodel.Category, error) {
	out := make([]catmodel.Category, 0, len(f.names))
	for _, n := range f.names {
		out = append(out, catmodel.Category{CategoryName: n})
	}
	return out, nil
}

func (f *fakeCategories) Create(context.Context, authz.Principal, catmodel.CreateCategoryRequest) (*catmodel.Category, error) {
	return nil, nil
}

func (f *fakeCategories) Exists(_ context.Context, name string) (bool, error) {
	return slices.Contains(f.names, name), nil
}

func (f *fakeCategories) InvalidateCache(context.Context) { f.invalidated++ }

// =====================================================
// FIXTURE
// =====================================================

var (
	authorID = uuid.MustParse("9b2f7c1e-6a0e-4a8f-9d55-3f1f1f0a0001")
	readerID = uuid.MustParse("9b2f7c1e-6a0e-4a8f-9d55-3f1f1f0a0002")

	author = authz.Principal{UserID: authorID.String(), Email: "author@example.com", Groups: []string{"READERS", "AUTHORS"}}
	reader = authz.Principal{UserID: readerID.String(), Email: "reader@example.com", Groups: []string{"READERS"}}
)

func newService() (*blogpostService, *fakeRepo, *fakeCategories) {
	repo := &fakeRepo{names: map[uuid.UUID]string{authorID: "Ada Lovelace"}}
	cats := &fakeCategories{names: []string{"Tech", "Travel"}}
	policy := authz.NewPolicy(authz.DefaultRules("AUTHORS", false)...)
	svc := NewBlogpostService(repo, cats, policy, cache.NewMemoryCache()).(*blogpostService)
	return svc, repo, cats
}

func validRequest() model.PostRequest {
	return model.PostRequest{
		Title:    "Hello world",
		Content:  "<p>First <strong>post</strong></p>",
		Category: "Tech",
	}
}

// =====================================================
// TESTS
// =====================================================

func TestCreateRequiresAuthors(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, authz.Guest(), validRequest())
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)

	_, err = svc.Create(ctx, reader, validRequest())
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.Zero(t, repo.createCalls)

	created, err := svc.Create(ctx, author, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", created.AuthorName)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateValidatesBeforeRepository(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	cases := map[string]func(r *model.PostRequest){
		"empty title":     func(r *model.PostRequest) { r.Title = "" },
		"blank title":     func(r *model.PostRequest) { r.Title = "   " },
		"empty content":   func(r *model.PostRequest) { r.Content = "" },
		"blank content":   func(r *model.PostRequest) { r.Content = "<p> </p>" },
		"no category":     func(r *model.PostRequest) { r.Category = "" },
		"bad image url":   func(r *model.PostRequest) { r.HeaderImage = "not a url" },
		"bad date format": func(r *model.PostRequest) { r.Date = "15/10/2026" },
	}
	for name, mutate := range cases {
		req := validRequest()
		mutate(&req)
		_, err := svc.Create(ctx, author, req)
		assert.Error(t, err, name)
	}
	assert.Zero(t, repo.createCalls)

	req := validRequest()
	req.Category = "Cooking"
	_, err := svc.Create(ctx, author, req)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	assert.Zero(t, repo.createCalls)
}

func TestCreateFallsBackToEmailForAuthorName(t *testing.T) {
	svc, _, _ := newService()
	other := uuid.New()
	p := authz.Principal{UserID: other.String(), Email: "new@example.com", Groups: []string{"AUTHORS"}}

	created, err := svc.Create(context.Background(), p, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", created.AuthorName)
}

func TestListFeedExcerptsAndFeatured(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"Old", "Newer", strings.Repeat("Long title ", 6)} {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		req := validRequest()
		req.Title = title
		req.Content = "<p>" + strings.Repeat("word ", 100) + "</p>"
		_, err := svc.Create(ctx, author, req)
		require.NoError(t, err)
	}

	_, err := svc.List(ctx, authz.Guest(), model.ListFilter{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)

	page, err := svc.List(ctx, reader, model.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Posts, 3)
	assert.Equal(t, 3, page.Total)

	newest := page.Posts[0]
	assert.True(t, newest.Featured)
	assert.NotEmpty(t, newest.Lead)
	// "word " lặp lại: khoảng trắng cuối bị trim trước khi thêm "..."
	assert.Equal(t, 102, len([]rune(newest.Excerpt)), "long title gets the short excerpt")
	assert.Equal(t, 152, len([]rune(page.Posts[1].Excerpt)))
	assert.True(t, strings.HasSuffix(page.Posts[1].Excerpt, "..."))
	assert.False(t, page.Posts[1].Featured)
	assert.NotContains(t, newest.Excerpt, "<p>")
}

func TestFeedCacheInvalidatedOnMutation(t *testing.T) {
	svc, repo, cats := newService()
	ctx := context.Background()

	_, err := svc.List(ctx, reader, model.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	_, err = svc.List(ctx, reader, model.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	created, err := svc.Create(ctx, author, validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cats.invalidated)

	page, err := svc.List(ctx, reader, model.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	require.Len(t, page.Posts, 1)

	require.NoError(t, svc.Delete(ctx, author, created.ID))
	page, err = svc.List(ctx, reader, model.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestGetSanitizesContent(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	req := validRequest()
	req.Content = `<p onclick="steal()">Hi</p><script>alert(1)</script>`
	created, err := svc.Create(ctx, author, req)
	require.NoError(t, err)

	detail, err := svc.Get(ctx, reader, created.ID)
	require.NoError(t, err)
	assert.NotContains(t, detail.ContentHTML, "script")
	assert.NotContains(t, detail.ContentHTML, "onclick")
	assert.Contains(t, detail.ContentHTML, "Hi")

	_, err = svc.Get(ctx, reader, uuid.New())
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestUpdateAndDeleteRules(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, author, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Title = "Edited"
	_, err = svc.Update(ctx, reader, created.ID, req)
	assert.ErrorIs(t, err, authz.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, reader, created.ID), authz.ErrForbidden)

	updated, err := svc.Update(ctx, author, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)

	_, err = svc.Update(ctx, author, uuid.New(), req)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestComposeCanPublish(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	view, err := svc.Compose(ctx, author)
	require.NoError(t, err)
	assert.True(t, view.CanPublish)
	assert.Len(t, view.Categories, 2)
	assert.Equal(t, "Ada Lovelace", view.AuthorName)

	view, err = svc.Compose(ctx, reader)
	require.NoError(t, err)
	assert.False(t, view.CanPublish)

	_, err = svc.Compose(ctx, authz.Guest())
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
}

func TestAuthorAndListByUser(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, author, validRequest())
	require.NoError(t, err)

	ref, err := svc.Author(ctx, reader, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", ref.DisplayName)
	assert.Equal(t, authorID, *ref.ID)

	page, err := svc.ListByUser(ctx, reader, authorID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.False(t, page.Posts[0].Featured)

	page, err = svc.ListByUser(ctx, reader, readerID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}
