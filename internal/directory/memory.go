package directory

import (
	"context"
	"sync"
)

// Memory directories back unit tests and keep the same "missing ids are
// absent, not errors" contract as the postgres ones.

type MemoryPeople struct {
	mu      sync.RWMutex
	records map[string]Person
}

func NewMemoryPeople(people ...Person) *MemoryPeople {
	d := &MemoryPeople{records: make(map[string]Person)}
	for _, p := range people {
		d.records[p.ID] = p
	}
	return d
}

func (d *MemoryPeople) Add(p Person) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[p.ID] = p
}

func (d *MemoryPeople) FindByIDs(_ context.Context, ids []string) ([]Person, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Person
	for _, id := range ids {
		if p, ok := d.records[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type MemoryOrganizations struct {
	mu      sync.RWMutex
	records map[string]Organization
}

func NewMemoryOrganizations(orgs ...Organization) *MemoryOrganizations {
	d := &MemoryOrganizations{records: make(map[string]Organization)}
	for _, o := range orgs {
		d.records[o.ID] = o
	}
	return d
}

func (d *MemoryOrganizations) Add(o Organization) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[o.ID] = o
}

func (d *MemoryOrganizations) FindByIDs(_ context.Context, ids []string) ([]Organization, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Organization
	for _, id := range ids {
		if o, ok := d.records[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

type MemoryListings struct {
	mu      sync.RWMutex
	records map[string]Listing
}

func NewMemoryListings(listings ...Listing) *MemoryListings {
	d := &MemoryListings{records: make(map[string]Listing)}
	for _, l := range listings {
		d.records[l.ID] = l
	}
	return d
}

func (d *MemoryListings) Add(l Listing) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[l.ID] = l
}

func (d *MemoryListings) FindByIDs(_ context.Context, ids []string) ([]Listing, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Listing
	for _, id := range ids {
		if l, ok := d.records[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (d *MemoryListings) IDsByOrganization(_ context.Context, orgID string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var ids []string
	for _, l := range d.records {
		if l.OrganizationID == orgID {
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}

type MemoryMedia struct {
	mu      sync.RWMutex
	records map[string]Media
}

func NewMemoryMedia(media ...Media) *MemoryMedia {
	d := &MemoryMedia{records: make(map[string]Media)}
	for _, m := range media {
		d.records[m.ID] = m
	}
	return d
}

func (d *MemoryMedia) Add(m Media) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[m.ID] = m
}

func (d *MemoryMedia) FindByIDs(_ context.Context, ids []string) ([]Media, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Media
	for _, id := range ids {
		if m, ok := d.records[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
