package authz

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

type Entity string

const (
	EntityBlogpost Entity = "Blogpost"
	EntityComment  Entity = "Comment"
	EntityCategory Entity = "Category"
	EntityUser     Entity = "User"
	EntityMedia    Entity = "Media"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

var allOps = []Operation{OpCreate, OpRead, OpUpdate, OpDelete}

// AuthMode: guest requests go through the identity pool, signed-in ones through the user pool.
type AuthMode string

const (
	ModeUserPool     AuthMode = "userPool"
	ModeIdentityPool AuthMode = "identityPool"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("not authorized to perform this operation")
)

// =====================================================
// PRINCIPAL
// =====================================================

// Principal is the caller of an operation. Zero value is a guest.
type Principal struct {
	UserID    string
	Email     string
	Groups    []string
	TokenID   string
	ExpiresAt time.Time
}

func Guest() Principal { return Principal{} }

func (p Principal) IsGuest() bool { return p.UserID == "" }

func (p Principal) InGroup(group string) bool {
	return !p.IsGuest() && slices.Contains(p.Groups, group)
}

func (p Principal) Mode() AuthMode {
	if p.IsGuest() {
		return ModeIdentityPool
	}
	return ModeUserPool
}

// =====================================================
// PRINCIPAL CLASSES & RULES
// =====================================================

type ClassKind int

const (
	ClassGuest ClassKind = iota
	ClassAuthenticated
	ClassOwner
	ClassGroup
)

type Class struct {
	Kind  ClassKind
	Group string // only for ClassGroup
}

func Guests() Class        { return Class{Kind: ClassGuest} }
func Authenticated() Class { return Class{Kind: ClassAuthenticated} }
func Owner() Class         { return Class{Kind: ClassOwner} }
func Group(name string) Class {
	return Class{Kind: ClassGroup, Group: name}
}

func (c Class) String() string {
	switch c.Kind {
	case ClassGuest:
		return "guest"
	case ClassAuthenticated:
		return "authenticated"
	case ClassOwner:
		return "owner"
	default:
		return "group:" + c.Group
	}
}

// matches: ownerID là user_id của record ("" khi record chưa có owner)
func (c Class) matches(p Principal, ownerID string) bool {
	switch c.Kind {
	case ClassGuest:
		return p.IsGuest()
	case ClassAuthenticated:
		return !p.IsGuest()
	case ClassOwner:
		return !p.IsGuest() && ownerID != "" && ownerID == p.UserID
	case ClassGroup:
		return p.InGroup(c.Group)
	}
	return false
}

type Rule struct {
	Entity Entity
	Class  Class
	Ops    []Operation
}

// Policy là bảng (entity, principal class, operations). Không có rule → deny.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: slices.Clone(rules)}
}

// DefaultRules builds the blog schema's rule table.
func DefaultRules(authorGroup string, allowGuestCategoryCreate bool) []Rule {
	rules := []Rule{
		{Entity: EntityBlogpost, Class: Group(authorGroup), Ops: allOps},
		{Entity: EntityBlogpost, Class: Authenticated(), Ops: []Operation{OpRead}},

		{Entity: EntityComment, Class: Owner(), Ops: []Operation{OpCreate, OpRead}},
		{Entity: EntityComment, Class: Authenticated(), Ops: []Operation{OpRead}},

		{Entity: EntityUser, Class: Owner(), Ops: allOps},

		{Entity: EntityCategory, Class: Group(authorGroup), Ops: []Operation{OpCreate}},
		{Entity: EntityCategory, Class: Guests(), Ops: []Operation{OpRead}},
		{Entity: EntityCategory, Class: Authenticated(), Ops: []Operation{OpRead}},

		{Entity: EntityMedia, Class: Owner(), Ops: []Operation{OpCreate, OpRead, OpDelete}},
	}
	if allowGuestCategoryCreate {
		rules = append(rules, Rule{Entity: EntityCategory, Class: Guests(), Ops: []Operation{OpCreate}})
	}
	return rules
}

func (p *Policy) Allows(entity Entity, op Operation, principal Principal, ownerID string) bool {
	for _, r := range p.rules {
		if r.Entity == entity && slices.Contains(r.Ops, op) && r.Class.matches(principal, ownerID) {
			return true
		}
	}
	return false
}

// Authorize trả ErrUnauthenticated cho guest bị từ chối, ErrForbidden cho user đã đăng nhập.
func (p *Policy) Authorize(entity Entity, op Operation, principal Principal, ownerID string) error {
	if p.Allows(entity, op, principal, ownerID) {
		return nil
	}
	if principal.IsGuest() {
		return fmt.Errorf("%s %s: %w", op, entity, ErrUnauthenticated)
	}
	return fmt.Errorf("%s %s: %w", op, entity, ErrForbidden)
}
