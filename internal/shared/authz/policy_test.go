package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	guest  = Guest()
	reader = Principal{UserID: "u-reader", Groups: []string{"READERS"}}
	author = Principal{UserID: "u-author", Groups: []string{"READERS", "AUTHORS"}}
)

func defaultPolicy() *Policy {
	return NewPolicy(DefaultRules("AUTHORS", false)...)
}

func TestBlogpostMutationsRequireAuthors(t *testing.T) {
	p := defaultPolicy()

	for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
		assert.False(t, p.Allows(EntityBlogpost, op, guest, ""), "guest %s", op)
		assert.False(t, p.Allows(EntityBlogpost, op, reader, reader.UserID), "reader %s own post", op)
		assert.True(t, p.Allows(EntityBlogpost, op, author, ""), "author %s", op)
	}
}

func TestBlogpostReadRequiresSignIn(t *testing.T) {
	p := defaultPolicy()

	assert.True(t, p.Allows(EntityBlogpost, OpRead, reader, ""))
	assert.ErrorIs(t, p.Authorize(EntityBlogpost, OpRead, guest, ""), ErrUnauthenticated)
}

func TestCommentRules(t *testing.T) {
	p := defaultPolicy()

	assert.True(t, p.Allows(EntityComment, OpCreate, reader, reader.UserID))
	assert.False(t, p.Allows(EntityComment, OpCreate, reader, author.UserID), "cannot create on behalf of someone else")
	assert.True(t, p.Allows(EntityComment, OpRead, reader, author.UserID))
	assert.False(t, p.Allows(EntityComment, OpRead, guest, ""))

	// no rule grants update/delete, not even to the owner
	assert.ErrorIs(t, p.Authorize(EntityComment, OpUpdate, reader, reader.UserID), ErrForbidden)
	assert.ErrorIs(t, p.Authorize(EntityComment, OpDelete, author, author.UserID), ErrForbidden)
}

func TestUserRecordIsOwnerOnly(t *testing.T) {
	p := defaultPolicy()

	for _, op := range allOps {
		assert.True(t, p.Allows(EntityUser, op, reader, reader.UserID))
		assert.False(t, p.Allows(EntityUser, op, author, reader.UserID))
	}
}

func TestCategoryGuestCreateIsOptIn(t *testing.T) {
	assert.False(t, defaultPolicy().Allows(EntityCategory, OpCreate, guest, ""))
	assert.True(t, defaultPolicy().Allows(EntityCategory, OpRead, guest, ""))
	assert.True(t, defaultPolicy().Allows(EntityCategory, OpCreate, author, ""))
	assert.False(t, defaultPolicy().Allows(EntityCategory, OpCreate, reader, ""))

	legacy := NewPolicy(DefaultRules("AUTHORS", true)...)
	assert.True(t, legacy.Allows(EntityCategory, OpCreate, guest, ""))
}

func TestOwnerNeverMatchesEmptyOwner(t *testing.T) {
	p := defaultPolicy()
	assert.False(t, p.Allows(EntityMedia, OpRead, reader, ""))
}

func TestPrincipalMode(t *testing.T) {
	assert.Equal(t, ModeIdentityPool, guest.Mode())
	assert.Equal(t, ModeUserPool, reader.Mode())
	assert.False(t, Principal{Groups: []string{"AUTHORS"}}.InGroup("AUTHORS"), "guest never has groups")
}
