package domain

import "time"

// AccountType classifies an account and fixes what it may do.
type AccountType int

const (
	Manager AccountType = iota
	Staff
	Guest
)

var accountTypeNames = map[AccountType]string{
	Manager: "manager",
	Staff:   "staff",
	Guest:   "guest",
}

func (t AccountType) String() string {
	return accountTypeNames[t]
}

// ParseAccountType maps the wire token to an AccountType. The boolean is
// false for unknown tokens.
func ParseAccountType(s string) (AccountType, bool) {
	for t, name := range accountTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// IsAccountTypeValid reports whether s names a known account type.
func IsAccountTypeValid(s string) bool {
	_, ok := ParseAccountType(s)
	return ok
}

// CanPromote encodes the promotion policy: guests never promote, staff
// promote mid priority only, managers promote anything.
func (t AccountType) CanPromote(p Priority) bool {
	switch t {
	case Manager:
		return true
	case Staff:
		return p == Mid
	default:
		return false
	}
}

// Account is a registered identity. Name is the primary key and, like Type,
// never changes after registration. Events holds every event the account
// promotes or is invited to.
type Account struct {
	Name   string
	Type   AccountType
	Events *EventIndex
}

// NewAccount returns an Account with an empty event index.
func NewAccount(name string, t AccountType) *Account {
	return &Account{Name: name, Type: t, Events: NewEventIndex()}
}

// Promote records the account as the event's promoter and indexes the event.
// The promoter is marked invited and accepted in the same step.
func (a *Account) Promote(ev *Event) {
	ev.SetPromoter(a.Name)
	a.Events.Add(ev, a.Name)
}

// Track adds an event the account was invited to.
func (a *Account) Track(ev *Event) {
	a.Events.Add(ev, "")
}

// PromotedEvent returns the event with the given name promoted by this
// account, or nil.
func (a *Account) PromotedEvent(name string) *Event {
	return a.Events.PromotedByName(a.Name, name)
}

// HasPromotedEvent reports whether the account already promotes an event
// with the given name.
func (a *Account) HasPromotedEvent(name string) bool {
	return a.PromotedEvent(name) != nil
}

// AlreadyInvited reports whether the account is invited to any event with
// the given name.
func (a *Account) AlreadyInvited(eventName string) bool {
	return a.Events.InvitedByName(a.Name, eventName) != nil
}

// OnInvitationList reports whether the account appears on the invitation
// list of an event with the given name.
func (a *Account) OnInvitationList(eventName string) bool {
	return a.AlreadyInvited(eventName)
}

// HasResponded reports whether the account already accepted or rejected an
// invitation to an event with the given name.
func (a *Account) HasResponded(eventName string) bool {
	for _, ev := range a.Events.Invited(a.Name).All() {
		if ev.Name() == eventName && (ev.IsAccepted(a.Name) || ev.IsRejected(a.Name)) {
			return true
		}
	}
	return false
}

// BusyAt reports whether the account promotes or has accepted an event at
// the given date-hour.
func (a *Account) BusyAt(when time.Time) bool {
	return a.Events.HasOnDate(when, a.Name)
}

// HasHighConflict reports whether the account promotes or has accepted a
// high priority event at the reference event's date-hour.
func (a *Account) HasHighConflict(ref *Event) bool {
	return a.Events.HasHighOnDate(ref, a.Name)
}

// Conflicts lists every event on the account's calendar in conflict with ref.
func (a *Account) Conflicts(ref *Event) []*Event {
	return a.Events.Conflicting(ref, a.Name)
}

// InvitedConflicts lists the conflicting events the account is merely
// invited to. Events the account promotes are excluded even though a
// promoter appears on its own invitation list.
func (a *Account) InvitedConflicts(ref *Event) []*Event {
	var out []*Event
	for _, ev := range a.Events.Invited(a.Name).Conflicting(ref, a.Name) {
		if !ev.IsPromoter(a.Name) {
			out = append(out, ev)
		}
	}
	return out
}
