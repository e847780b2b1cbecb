package interaction

// Role is the entity collection an event-side identifier is expected to
// belong to, given the event's type.
type Role string

const (
	RolePerson       Role = "person"
	RoleOrganization Role = "organization"
	RoleListing      Role = "listing"
	RoleMedia        Role = "media"

	// RoleOrgThenPerson marks the ambiguous actor of scout and like_user
	// events: the history contains both organization and person producers,
	// so resolution tries the organization directory first and falls back
	// to the person directory.
	RoleOrgThenPerson Role = "org_then_person"

	// RoleNone means the reference does not resolve against any directory.
	RoleNone Role = "none"
)

// Roles declares how both sides of an event type resolve.
type Roles struct {
	Actor  Role
	Target Role
}

// eventRoles is the single dispatch point for polymorphic identity
// resolution. Adding an event type without declaring its roles here leaves it
// resolving as unknown, which the exhaustiveness test in roles_test.go
// catches.
var eventRoles = map[EventType]Roles{
	TypeApply:       {Actor: RolePerson, Target: RoleListing},
	TypeLikeJob:     {Actor: RolePerson, Target: RoleListing},
	TypeLikeQuest:   {Actor: RolePerson, Target: RoleListing},
	TypeLikeCompany: {Actor: RolePerson, Target: RoleOrganization},
	TypeLikeReel:    {Actor: RolePerson, Target: RoleMedia},
	TypeLikeUser:    {Actor: RoleOrgThenPerson, Target: RolePerson},
	TypeScout:       {Actor: RoleOrgThenPerson, Target: RolePerson},

	// Toggle targets reference application records, which have no directory.
	TypeCompanyFavoriteApp: {Actor: RolePerson, Target: RoleNone},
	TypeCompanyMemoApp:     {Actor: RolePerson, Target: RoleNone},
}

// KnownTypes lists every declared event type.
func KnownTypes() []EventType {
	types := make([]EventType, 0, len(eventRoles))
	for t := range eventRoles {
		types = append(types, t)
	}
	return types
}

// RolesFor returns the resolution roles for an event type. Unrecognized types
// resolve as unknown on both sides.
func RolesFor(t EventType) Roles {
	if roles, ok := eventRoles[t]; ok {
		return roles
	}
	return Roles{Actor: RoleNone, Target: RoleNone}
}

// Known reports whether the type is part of the declared closed set.
func (t EventType) Known() bool {
	_, ok := eventRoles[t]
	return ok
}

// Toggle reports whether the type follows toggle semantics.
func (t EventType) Toggle() bool {
	return t == TypeCompanyFavoriteApp || t == TypeCompanyMemoApp
}

// Placeholder is the fixed display name substituted when an identifier has no
// matching record in its directory. Resolution never fails a batch over a
// dangling reference.
func (r Role) Placeholder() string {
	switch r {
	case RolePerson:
		return "unknown user"
	case RoleOrganization, RoleOrgThenPerson:
		return "unknown company"
	case RoleListing:
		return "unknown job"
	case RoleMedia:
		return "unknown reel"
	default:
		return "unknown"
	}
}
