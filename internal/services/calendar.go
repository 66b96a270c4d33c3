package services

import (
	"context"
	"log/slog"
	"time"

	"sharedcalendar/internal/domain"
)

type calendarService struct {
	dir      domain.Directory
	notifier domain.Notifier
	logger   *slog.Logger
}

// NewCalendarService wires the scheduling engine over the given account
// directory. The notifier is called after each successful invitation; pass
// a noop implementation to disable notices.
func NewCalendarService(dir domain.Directory, notifier domain.Notifier, logger *slog.Logger) domain.Calendar {
	return &calendarService{dir: dir, notifier: notifier, logger: logger}
}

func (s *calendarService) RegisterAccount(ctx context.Context, name, accountType string) (*domain.Account, error) {
	if s.dir.Exists(name) {
		return nil, domain.Rejected(name, domain.ErrAccountExists)
	}
	t, ok := domain.ParseAccountType(accountType)
	if !ok {
		return nil, domain.Rejected(accountType, domain.ErrUnknownAccountType)
	}
	acc := domain.NewAccount(name, t)
	s.dir.Register(acc)
	s.logger.DebugContext(ctx, "account registered", "account", name, "type", t.String())
	return acc, nil
}

func (s *calendarService) Accounts(ctx context.Context) []*domain.Account {
	return s.dir.Sorted()
}

func (s *calendarService) CreateEvent(ctx context.Context, promoter, name, priority string, when time.Time, topics []string) (*domain.Event, error) {
	acc, ok := s.dir.Lookup(promoter)
	if !ok {
		return nil, domain.Rejected(promoter, domain.ErrAccountNotFound)
	}
	p, ok := domain.ParsePriority(priority)
	if !ok {
		return nil, domain.Rejected(priority, domain.ErrUnknownPriority)
	}
	if acc.Type == domain.Guest {
		return nil, domain.Rejected(promoter, domain.ErrGuestForbidden)
	}
	if !acc.Type.CanPromote(p) {
		return nil, domain.Rejected(promoter, domain.ErrStaffHighForbidden)
	}
	if acc.HasPromotedEvent(name) {
		return nil, domain.Rejected(name, domain.ErrEventExists)
	}
	if acc.BusyAt(when) {
		return nil, domain.Rejected(promoter, domain.ErrBusyOnDate)
	}

	ev := domain.NewEvent(name, p, when, topics)
	acc.Promote(ev)

	// Promoting forecloses the promoter's pending invitations that now
	// conflict with the new slot: each is auto-rejected on its event.
	for _, other := range acc.InvitedConflicts(ev) {
		other.AddRejected(acc.Name)
	}

	s.logger.DebugContext(ctx, "event scheduled",
		"event", name, "promoter", promoter, "priority", p.String(), "when", when)
	return ev, nil
}

func (s *calendarService) AccountEvents(ctx context.Context, name string) ([]*domain.Event, error) {
	acc, ok := s.dir.Lookup(name)
	if !ok {
		return nil, domain.Rejected(name, domain.ErrAccountNotFound)
	}
	return acc.Events.All(), nil
}

func (s *calendarService) Invite(ctx context.Context, invitee, promoter, eventName string) (*domain.InviteOutcome, error) {
	promoterAcc, ok := s.dir.Lookup(promoter)
	if !ok {
		return nil, domain.Rejected(promoter, domain.ErrAccountNotFound)
	}
	inviteeAcc, ok := s.dir.Lookup(invitee)
	if !ok {
		return nil, domain.Rejected(invitee, domain.ErrAccountNotFound)
	}
	ev := promoterAcc.PromotedEvent(eventName)
	if ev == nil {
		return nil, domain.Rejected(eventName, domain.ErrEventNotFound)
	}
	if inviteeAcc.AlreadyInvited(eventName) {
		return nil, domain.Rejected(invitee, domain.ErrAlreadyInvited)
	}

	// Priority escalation: a high priority invitation forces a staff
	// invitee's hand. Unless an equally high commitment already occupies
	// the slot, acceptance is immediate and every conflicting commitment
	// gives way.
	if inviteeAcc.Type == domain.Staff && ev.IsHighPriority() {
		if inviteeAcc.HasHighConflict(ev) {
			return nil, domain.Rejected(invitee, domain.ErrAlreadyAttending)
		}
		out := &domain.InviteOutcome{AutoAccepted: true}
		for _, conflict := range inviteeAcc.Conflicts(ev) {
			if conflict.IsPromoter(invitee) {
				out.Cascade = append(out.Cascade, domain.CascadeEffect{
					EventName: conflict.Name(),
					Promoter:  invitee,
					Removed:   true,
				})
				s.removeEverywhere(ctx, conflict)
			} else {
				out.Cascade = append(out.Cascade, domain.CascadeEffect{
					EventName: conflict.Name(),
					Promoter:  conflict.Promoter(),
				})
				conflict.AddRejected(invitee)
			}
		}
		ev.AddInvited(invitee)
		ev.AddAccepted(invitee)
		inviteeAcc.Track(ev)
		s.notify(ctx, invitee, ev)
		return out, nil
	}

	if inviteeAcc.BusyAt(ev.When()) {
		return nil, domain.Rejected(invitee, domain.ErrAlreadyAttending)
	}
	ev.AddInvited(invitee)
	inviteeAcc.Track(ev)
	s.notify(ctx, invitee, ev)
	return &domain.InviteOutcome{}, nil
}

func (s *calendarService) Respond(ctx context.Context, invitee, promoter, eventName, response string) (*domain.RespondOutcome, error) {
	promoterAcc, ok := s.dir.Lookup(promoter)
	if !ok {
		return nil, domain.Rejected(promoter, domain.ErrAccountNotFound)
	}
	inviteeAcc, ok := s.dir.Lookup(invitee)
	if !ok {
		return nil, domain.Rejected(invitee, domain.ErrAccountNotFound)
	}
	resp, ok := domain.ParseResponse(response)
	if !ok {
		return nil, domain.Rejected(response, domain.ErrUnknownResponse)
	}
	ev := promoterAcc.PromotedEvent(eventName)
	if ev == nil {
		return nil, domain.Rejected(eventName, domain.ErrEventNotFound)
	}
	if !inviteeAcc.OnInvitationList(eventName) {
		return nil, domain.Rejected(invitee, domain.ErrNotInvited)
	}
	if inviteeAcc.HasResponded(eventName) {
		return nil, domain.Rejected(invitee, domain.ErrAlreadyResponded)
	}

	out := &domain.RespondOutcome{Response: resp}
	if resp == domain.Accept {
		// Accepting one slot rejects every other invitation in conflict
		// with it. Rejection is local: nothing else moves.
		for _, conflict := range inviteeAcc.InvitedConflicts(ev) {
			out.Cascade = append(out.Cascade, domain.CascadeEffect{
				EventName: conflict.Name(),
				Promoter:  conflict.Promoter(),
			})
			conflict.AddRejected(invitee)
		}
		ev.AddAccepted(invitee)
	} else {
		ev.AddRejected(invitee)
	}
	s.logger.DebugContext(ctx, "response recorded",
		"event", eventName, "promoter", promoter, "invitee", invitee, "response", resp.String())
	return out, nil
}

func (s *calendarService) EventDetails(ctx context.Context, promoter, eventName string) (*domain.Event, error) {
	promoterAcc, ok := s.dir.Lookup(promoter)
	if !ok {
		return nil, domain.Rejected(promoter, domain.ErrAccountNotFound)
	}
	ev := promoterAcc.PromotedEvent(eventName)
	if ev == nil {
		return nil, domain.Rejected(eventName, domain.ErrEventNotFound)
	}
	return ev, nil
}

func (s *calendarService) SearchTopics(ctx context.Context, topics []string) []*domain.Event {
	if !s.dir.HasEventWithTopic(topics) {
		return nil
	}
	events := s.dir.EventsWithTopics(topics)
	domain.RankEvents(events, topics)
	return events
}

// removeEverywhere destroys an event whose promoter was pulled into a higher
// priority commitment: the event leaves every index and loses its promoter
// reference, so no calendar or query can reach it afterwards.
func (s *calendarService) removeEverywhere(ctx context.Context, ev *domain.Event) {
	promoter := ev.Promoter()
	s.dir.RemoveEverywhere(ev)
	ev.ClearPromoter()
	s.logger.DebugContext(ctx, "event removed", "event", ev.Name(), "promoter", promoter)
}

func (s *calendarService) notify(ctx context.Context, invitee string, ev *domain.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyInvited(ctx, invitee, ev); err != nil {
		s.logger.WarnContext(ctx, "invitation notice failed",
			"invitee", invitee, "event", ev.Name(), "err", err)
	}
}
