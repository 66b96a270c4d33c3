package domain

import (
	"context"
	"time"
)

// Invitee answer tokens as exposed to callers of EventDetails.
const (
	StatusAccept   = "accept"
	StatusReject   = "reject"
	StatusNoAnswer = "no_answer"
)

// Directory owns every registered account and answers the cross-account
// queries the scheduling cascades need. There is one Directory per engine
// run; it is injected into the service, never ambient.
type Directory interface {
	Register(acc *Account)
	Lookup(name string) (*Account, bool)
	Exists(name string) bool
	// Sorted lists all accounts in ascending name order.
	Sorted() []*Account
	// RemoveEverywhere strips ev from the index of every account tracking
	// it, the promoter included.
	RemoveEverywhere(ev *Event)
	HasEventWithTopic(topics []string) bool
	// EventsWithTopics gathers every event covering at least one of the
	// query topics, each exactly once.
	EventsWithTopics(topics []string) []*Event
}

// CascadeEffect records one automatic change made while resolving a
// scheduling conflict. When Removed is true the event was cascade-removed
// from every calendar; otherwise the subject's invitation to it was
// auto-rejected.
type CascadeEffect struct {
	EventName string
	Promoter  string
	Removed   bool
}

// InviteOutcome reports a successful invitation. AutoAccepted is true on the
// priority-escalation path, where the invitee is committed immediately and
// Cascade lists the conflicting commitments that were removed or rejected,
// in calendar order.
type InviteOutcome struct {
	AutoAccepted bool
	Cascade      []CascadeEffect
}

// RespondOutcome reports a recorded response. Cascade lists the conflicting
// invitations auto-rejected by an acceptance; it is empty for rejections.
type RespondOutcome struct {
	Response Response
	Cascade  []CascadeEffect
}

// Calendar is the scheduling engine. Every operation validates its
// preconditions before mutating anything; a failed precondition comes back
// as a *OpError wrapping one of the sentinel errors, with no partial state
// change.
type Calendar interface {
	RegisterAccount(ctx context.Context, name, accountType string) (*Account, error)
	Accounts(ctx context.Context) []*Account
	CreateEvent(ctx context.Context, promoter, name, priority string, when time.Time, topics []string) (*Event, error)
	AccountEvents(ctx context.Context, name string) ([]*Event, error)
	Invite(ctx context.Context, invitee, promoter, eventName string) (*InviteOutcome, error)
	Respond(ctx context.Context, invitee, promoter, eventName, response string) (*RespondOutcome, error)
	EventDetails(ctx context.Context, promoter, eventName string) (*Event, error)
	SearchTopics(ctx context.Context, topics []string) []*Event
}

// Notifier delivers out-of-band invitation notices. Failures are reported to
// the caller for logging but never fail the scheduling operation.
type Notifier interface {
	NotifyInvited(ctx context.Context, invitee string, ev *Event) error
}
