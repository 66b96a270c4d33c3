package domain

import (
	"slices"
	"time"
)

// EventIndex holds the events relevant to one account, both promoted and
// invited-to, in insertion order. Indices never copy events: every entry is
// a pointer shared with the indices of all other accounts touching the same
// event, so roster mutations are seen everywhere without re-fetching.
type EventIndex struct {
	order    []*Event
	promoted map[string]*Event
}

// NewEventIndex returns an empty index.
func NewEventIndex() *EventIndex {
	return &EventIndex{promoted: make(map[string]*Event)}
}

// Add appends ev to the index if it is not already present (by identity).
// When accName is the event's promoter the event is indexed by name for the
// promoted-subset lookup and the promoter is self-invited and self-accepted.
func (x *EventIndex) Add(ev *Event, accName string) {
	if !slices.Contains(x.order, ev) {
		x.order = append(x.order, ev)
	}
	if ev.IsPromoter(accName) {
		x.promoted[ev.Name()] = ev
		ev.AddInvited(accName)
		ev.AddAccepted(accName)
	}
}

// Remove drops ev from the index. Identity-based: a different event that
// happens to share the name stays. No-op when ev is absent.
func (x *EventIndex) Remove(ev *Event) {
	if i := slices.Index(x.order, ev); i >= 0 {
		x.order = slices.Delete(x.order, i, i+1)
	}
	if x.promoted[ev.Name()] == ev {
		delete(x.promoted, ev.Name())
	}
}

// All returns the indexed events in insertion order.
func (x *EventIndex) All() []*Event {
	return slices.Clone(x.order)
}

// Len returns the number of indexed events.
func (x *EventIndex) Len() int {
	return len(x.order)
}

// PromotedByName returns the event with the given name promoted by accName,
// or nil.
func (x *EventIndex) PromotedByName(accName, name string) *Event {
	if ev := x.promoted[name]; ev != nil && ev.IsPromoter(accName) {
		return ev
	}
	return nil
}

// InvitedByName returns an event with the given name that accName is invited
// to, or nil.
func (x *EventIndex) InvitedByName(accName, name string) *Event {
	for _, ev := range x.order {
		if ev.Name() == name && ev.IsInvited(accName) {
			return ev
		}
	}
	return nil
}

// HasOnDate reports whether the account is committed at the given date-hour:
// some indexed event happens exactly then and accName promotes it or has
// accepted it. Invitations the account rejected, or never answered, do not
// make it busy.
func (x *EventIndex) HasOnDate(when time.Time, accName string) bool {
	for _, ev := range x.order {
		if ev.When().Equal(when) && (ev.IsPromoter(accName) || ev.IsAccepted(accName)) {
			return true
		}
	}
	return false
}

// HasHighOnDate reports whether the account is committed to a high priority
// event at the reference event's date-hour.
func (x *EventIndex) HasHighOnDate(ref *Event, accName string) bool {
	for _, ev := range x.order {
		if !ev.When().Equal(ref.When()) || !ev.IsHighPriority() {
			continue
		}
		if ev.IsPromoter(accName) || ev.IsAccepted(accName) {
			return true
		}
	}
	return false
}

// Conflicting lists the indexed events in conflict with ref for accName:
// same date-hour with a different name, or same date-hour and name from a
// different promoter. Events accName already rejected are skipped, and ref
// itself is excluded by its (name, promoter) identity.
func (x *EventIndex) Conflicting(ref *Event, accName string) []*Event {
	var out []*Event
	for _, ev := range x.order {
		if ev.IsRejected(accName) || !ev.When().Equal(ref.When()) {
			continue
		}
		if ev.Name() != ref.Name() || ev.Promoter() != ref.Promoter() {
			if !slices.Contains(out, ev) {
				out = append(out, ev)
			}
		}
	}
	return out
}

// Promoted projects the subset of events promoted by accName.
func (x *EventIndex) Promoted(accName string) *EventIndex {
	sub := NewEventIndex()
	for _, ev := range x.order {
		if ev.IsPromoter(accName) {
			sub.Add(ev, accName)
		}
	}
	return sub
}

// Invited projects the subset of events accName is invited to.
func (x *EventIndex) Invited(accName string) *EventIndex {
	sub := NewEventIndex()
	for _, ev := range x.order {
		if ev.IsInvited(accName) {
			sub.Add(ev, "")
		}
	}
	return sub
}

// HasTopic reports whether any indexed event covers any of the query topics.
func (x *EventIndex) HasTopic(topics []string) bool {
	for _, topic := range topics {
		for _, ev := range x.order {
			if ev.HasTopic(topic) {
				return true
			}
		}
	}
	return false
}

// EventsWithTopics returns the indexed events covering at least one of the
// query topics, in insertion order, each at most once.
func (x *EventIndex) EventsWithTopics(topics []string) []*Event {
	var out []*Event
	for _, ev := range x.order {
		for _, topic := range topics {
			if ev.HasTopic(topic) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}
