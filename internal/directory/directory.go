// Package directory provides read-only batched lookups over the entity
// collections events refer to: people, organizations, listings and media
// reels. Directories never mutate the entities they serve; the event log owns
// only the references.
package directory

// Person is a display-ready projection of a marketplace user.
type Person struct {
	ID    string
	Name  string
	Email string
}

// Organization is a display-ready projection of a company account.
type Organization struct {
	ID   string
	Name string
}

// Listing is a display-ready projection of a job or quest listing.
type Listing struct {
	ID             string
	Title          string
	OrganizationID string
}

// Media is a display-ready projection of a short-form reel.
type Media struct {
	ID    string
	Title string
}
