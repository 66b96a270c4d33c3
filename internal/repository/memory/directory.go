// Package memory holds the in-memory account registry. The engine keeps no
// state across runs, so this is the only storage backend.
package memory

import (
	"sort"

	"sharedcalendar/internal/domain"
)

// Directory implements domain.Directory over a name-keyed map.
type Directory struct {
	accounts map[string]*domain.Account
}

// NewDirectory returns an empty registry.
func NewDirectory() *Directory {
	return &Directory{accounts: make(map[string]*domain.Account)}
}

// Register stores the account under its name. The caller guarantees the name
// is unused; registration never overwrites.
func (d *Directory) Register(acc *domain.Account) {
	if _, ok := d.accounts[acc.Name]; ok {
		return
	}
	d.accounts[acc.Name] = acc
}

// Lookup returns the account with the given name.
func (d *Directory) Lookup(name string) (*domain.Account, bool) {
	acc, ok := d.accounts[name]
	return acc, ok
}

// Exists reports whether an account with the given name is registered.
func (d *Directory) Exists(name string) bool {
	_, ok := d.accounts[name]
	return ok
}

// Sorted lists all accounts in ascending name order.
func (d *Directory) Sorted() []*domain.Account {
	names := make([]string, 0, len(d.accounts))
	for name := range d.accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*domain.Account, 0, len(names))
	for _, name := range names {
		out = append(out, d.accounts[name])
	}
	return out
}

// RemoveEverywhere strips ev from every account's index. Removal is by
// identity, so same-named events from other promoters are untouched.
func (d *Directory) RemoveEverywhere(ev *domain.Event) {
	for _, acc := range d.accounts {
		acc.Events.Remove(ev)
	}
}

// HasEventWithTopic reports whether any account holds an event covering any
// of the query topics.
func (d *Directory) HasEventWithTopic(topics []string) bool {
	for _, acc := range d.accounts {
		if acc.Events.HasTopic(topics) {
			return true
		}
	}
	return false
}

// EventsWithTopics gathers every event covering at least one query topic
// across all accounts, deduplicated by identity. Accounts are visited in
// name order so the pre-ranking order is deterministic.
func (d *Directory) EventsWithTopics(topics []string) []*domain.Event {
	seen := make(map[*domain.Event]struct{})
	var out []*domain.Event
	for _, acc := range d.Sorted() {
		for _, ev := range acc.Events.EventsWithTopics(topics) {
			if _, ok := seen[ev]; ok {
				continue
			}
			seen[ev] = struct{}{}
			out = append(out, ev)
		}
	}
	return out
}
