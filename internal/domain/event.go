package domain

import (
	"slices"
	"time"
)

// Priority is an event's priority tier.
type Priority int

const (
	High Priority = iota
	Mid
)

func (p Priority) String() string {
	if p == High {
		return "high"
	}
	return "mid"
}

// ParsePriority maps the wire token to a Priority. The boolean is false for
// unknown tokens.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "high":
		return High, true
	case "mid":
		return Mid, true
	}
	return 0, false
}

// Response is an invitee's reply to an invitation.
type Response int

const (
	Accept Response = iota
	Reject
)

func (r Response) String() string {
	if r == Accept {
		return "accept"
	}
	return "reject"
}

// ParseResponse maps the wire token to a Response. The boolean is false for
// unknown tokens.
func ParseResponse(s string) (Response, bool) {
	switch s {
	case "accept":
		return Accept, true
	case "reject":
		return Reject, true
	}
	return 0, false
}

// DateHour builds the whole-hour timestamp events are scheduled at. Time
// resolution below one hour does not exist in this system.
func DateHour(year, month, day, hour int) time.Time {
	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
}

// Event is a schedule slot. Name, priority, date-hour, and topics are fixed
// at construction; the promoter reference and the invitation rosters mutate
// as the scheduling protocol runs. One Event value is shared by the indices
// of its promoter and of every invitee, so roster changes are visible to all
// holders.
type Event struct {
	name     string
	priority Priority
	when     time.Time
	topics   []string
	promoter string

	invited  []string
	accepted []string
	rejected []string
}

// NewEvent constructs an event with no promoter and empty rosters.
func NewEvent(name string, priority Priority, when time.Time, topics []string) *Event {
	return &Event{
		name:     name,
		priority: priority,
		when:     when,
		topics:   slices.Clone(topics),
	}
}

func (e *Event) Name() string         { return e.name }
func (e *Event) Priority() Priority   { return e.priority }
func (e *Event) When() time.Time      { return e.when }
func (e *Event) Promoter() string     { return e.promoter }
func (e *Event) Topics() []string     { return slices.Clone(e.topics) }
func (e *Event) IsHighPriority() bool { return e.priority == High }

// SetPromoter records the owning account. The promoter is cleared only while
// the event is being cascade-removed from every index.
func (e *Event) SetPromoter(name string) { e.promoter = name }
func (e *Event) ClearPromoter()          { e.promoter = "" }

// IsPromoter reports whether name is the event's promoter.
func (e *Event) IsPromoter(name string) bool {
	return e.promoter != "" && e.promoter == name
}

func (e *Event) IsInvited(name string) bool  { return slices.Contains(e.invited, name) }
func (e *Event) IsAccepted(name string) bool { return slices.Contains(e.accepted, name) }
func (e *Event) IsRejected(name string) bool { return slices.Contains(e.rejected, name) }

// AddInvited puts name on the invitation list. Idempotent.
func (e *Event) AddInvited(name string) {
	if !slices.Contains(e.invited, name) {
		e.invited = append(e.invited, name)
	}
}

// AddAccepted moves name into the accepted roster, withdrawing any earlier
// rejection. Idempotent.
func (e *Event) AddAccepted(name string) {
	e.rejected = removeName(e.rejected, name)
	if !slices.Contains(e.accepted, name) {
		e.accepted = append(e.accepted, name)
	}
}

// AddRejected moves name into the rejected roster, withdrawing any earlier
// acceptance. Idempotent.
func (e *Event) AddRejected(name string) {
	e.accepted = removeName(e.accepted, name)
	if !slices.Contains(e.rejected, name) {
		e.rejected = append(e.rejected, name)
	}
}

func removeName(names []string, name string) []string {
	if i := slices.Index(names, name); i >= 0 {
		return slices.Delete(names, i, i+1)
	}
	return names
}

func (e *Event) InvitedCount() int  { return len(e.invited) }
func (e *Event) AcceptedCount() int { return len(e.accepted) }
func (e *Event) RejectedCount() int { return len(e.rejected) }

// UnansweredCount counts invited accounts present in neither the accepted
// nor the rejected roster.
func (e *Event) UnansweredCount() int {
	n := 0
	for _, name := range e.invited {
		if !slices.Contains(e.accepted, name) && !slices.Contains(e.rejected, name) {
			n++
		}
	}
	return n
}

// InvitedNames returns the invitation list in invite order.
func (e *Event) InvitedNames() []string {
	return slices.Clone(e.invited)
}

// HasTopic reports whether the event covers the given topic.
func (e *Event) HasTopic(topic string) bool {
	return slices.Contains(e.topics, topic)
}

// MatchingTopicCount counts how many of the query topics the event covers.
// The query list is taken as given: a topic repeated in the query counts
// once per occurrence.
func (e *Event) MatchingTopicCount(query []string) int {
	n := 0
	for _, topic := range query {
		if slices.Contains(e.topics, topic) {
			n++
		}
	}
	return n
}
