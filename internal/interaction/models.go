// Package interaction defines the append-only interaction event log shared by
// every surface of the marketplace: likes, applications, scouts and the
// company-side toggle events kept on application records.
package interaction

import (
	"time"

	"github.com/google/uuid"
)

// EventType discriminates events in the shared log. The set of known types is
// closed, but the log itself is shared with future event kinds, so the type
// stays an open string and unrecognized values are handled as unknown rather
// than rejected.
type EventType string

const (
	TypeApply       EventType = "apply"
	TypeLikeJob     EventType = "like_job"
	TypeLikeQuest   EventType = "like_quest"
	TypeLikeCompany EventType = "like_company"
	TypeLikeReel    EventType = "like_reel"
	TypeLikeUser    EventType = "like_user"
	TypeScout       EventType = "scout"

	// Toggle types. At most one active row per (target, type) key; written
	// via delete-then-insert (favorite) or find-then-update (memo), never
	// plain append.
	TypeCompanyFavoriteApp EventType = "company_favorite_app"
	TypeCompanyMemoApp     EventType = "company_memo_app"
)

// MetadataContentKey is where memo events keep their free-form content.
const MetadataContentKey = "content"

// Event is one immutable record of an actor performing a typed action against
// a target. Only toggle-typed rows are ever mutated or deleted.
type Event struct {
	ID        uuid.UUID
	ActorID   string
	Type      EventType
	TargetID  string
	Metadata  map[string]string
	CreatedAt time.Time
}

// MemoContent returns the memo text carried by a memo event, if any.
func (e Event) MemoContent() string {
	return e.Metadata[MetadataContentKey]
}
