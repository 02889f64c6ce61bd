package authz

// Action identifies something an actor wants to do.
type Action string

const (
	// ManageCatalog covers adding movies to the catalog.
	ManageCatalog Action = "catalog:manage"
	// CommentOnMovie covers submitting comments on a movie.
	CommentOnMovie Action = "catalog:comment"
)

// Actor is the authenticated identity attached to a request. A zero Actor is
// an anonymous caller.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// Policy decides whether an actor may perform an action. Handlers consult the
// policy instead of checking role flags inline, so the role model can change
// without touching handler bodies.
type Policy interface {
	Allow(action Action, actor Actor) bool
}

// RolePolicy is the flag-based policy: admins manage the catalog, any
// authenticated user comments.
type RolePolicy struct{}

// NewRolePolicy creates the default role-based policy.
func NewRolePolicy() RolePolicy {
	return RolePolicy{}
}

// Allow implements Policy.
func (RolePolicy) Allow(action Action, actor Actor) bool {
	switch action {
	case ManageCatalog:
		return actor.IsAdmin
	case CommentOnMovie:
		return actor.UserID != ""
	}
	return false
}
