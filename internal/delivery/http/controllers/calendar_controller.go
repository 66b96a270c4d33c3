package controllers

import (
	"log/slog"
	"net/http"

	"sharedcalendar/internal/delivery/http/helpers"
	"sharedcalendar/internal/domain"
)

// CalendarController exposes the scheduling engine over JSON endpoints.
type CalendarController struct {
	Logger  *slog.Logger
	Service domain.Calendar
}

func NewCalendarController(logger *slog.Logger, svc domain.Calendar) *CalendarController {
	return &CalendarController{Logger: logger, Service: svc}
}

// RegisterAccountRequest is the request body for POST /accounts.
type RegisterAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Validate implements Validator.
func (r RegisterAccountRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Type == "" {
		errs = append(errs, "type is required")
	}
	return errs
}

// AccountResponse is one account in listing and registration responses.
type AccountResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// RegisterAccount godoc
// @Summary Register an account
// @Description Register a new account with a globally unique name and a type of manager, staff, or guest.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body RegisterAccountRequest true "Account name and type"
// @Success 201 {object} helpers.APIResponse "data contains the registered account"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, invalid-type"
// @Failure 409 {object} helpers.APIResponse "error.code: account-exists"
// @Router /accounts [post]
func (c *CalendarController) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req RegisterAccountRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	acc, err := c.Service.RegisterAccount(r.Context(), req.Name, req.Type)
	if err != nil {
		helpers.WriteRejection(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, AccountResponse{Name: acc.Name, Type: acc.Type.String()})
}

// ListAccounts godoc
// @Summary List accounts
// @Description List all registered accounts sorted by name.
// @Tags accounts
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the sorted account list"
// @Router /accounts [get]
func (c *CalendarController) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accs := c.Service.Accounts(r.Context())
	out := make([]AccountResponse, 0, len(accs))
	for _, acc := range accs {
		out = append(out, AccountResponse{Name: acc.Name, Type: acc.Type.String()})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// WhenRequest is the whole-hour timestamp of an event.
type WhenRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Promoter string      `json:"promoter"`
	Name     string      `json:"name"`
	Priority string      `json:"priority"`
	When     WhenRequest `json:"when"`
	Topics   []string    `json:"topics"`
}

// Validate implements Validator.
func (r CreateEventRequest) Validate() []string {
	var errs []string
	if r.Promoter == "" {
		errs = append(errs, "promoter is required")
	}
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Priority == "" {
		errs = append(errs, "priority is required")
	}
	return errs
}

// EventSummary is one event in an account's event listing.
type EventSummary struct {
	Name       string `json:"name"`
	Promoter   string `json:"promoter"`
	Invited    int    `json:"invited"`
	Accepted   int    `json:"accepted"`
	Rejected   int    `json:"rejected"`
	Unanswered int    `json:"unanswered"`
}

func summarize(ev *domain.Event) EventSummary {
	return EventSummary{
		Name:       ev.Name(),
		Promoter:   ev.Promoter(),
		Invited:    ev.InvitedCount(),
		Accepted:   ev.AcceptedCount(),
		Rejected:   ev.RejectedCount(),
		Unanswered: ev.UnansweredCount(),
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Schedule a new event promoted by an existing non-guest account. Staff may only promote mid priority events, and the promoter must be free at the requested date-hour.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the scheduled event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, invalid-priority"
// @Failure 403 {object} helpers.APIResponse "error.code: guest-forbidden, staff-high-forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: account-not-found"
// @Failure 409 {object} helpers.APIResponse "error.code: event-exists, busy-on-date"
// @Router /events [post]
func (c *CalendarController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	when := domain.DateHour(req.When.Year, req.When.Month, req.When.Day, req.When.Hour)
	ev, err := c.Service.CreateEvent(r.Context(), req.Promoter, req.Name, req.Priority, when, req.Topics)
	if err != nil {
		helpers.WriteRejection(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, summarize(ev))
}

// ListAccountEvents godoc
// @Summary List an account's events
// @Description List every event the account promotes or is invited to, in calendar order, with invitation status counters.
// @Tags accounts
// @Produce json
// @Param accountName path string true "Account name"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 404 {object} helpers.APIResponse "error.code: account-not-found"
// @Router /accounts/{accountName}/events [get]
func (c *CalendarController) ListAccountEvents(w http.ResponseWriter, r *http.Request) {
	evs, err := c.Service.AccountEvents(r.Context(), r.PathValue("accountName"))
	if err != nil {
		helpers.WriteRejection(w, err)
		return
	}
	out := make([]EventSummary, 0, len(evs))
	for _, ev := range evs {
		out = append(out, summarize(ev))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// InviteRequest is the request body for inviting an account to an event.
type InviteRequest struct {
	Invitee string `json:"invitee"`
}

// Validate implements Validator.
func (r InviteRequest) Validate() []string {
	if r.Invitee == "" {
		return []string{"invitee is required"}
	}
	return nil
}

// CascadeEffectResponse is one automatic change from conflict resolution.
type CascadeEffectResponse struct {
	Event    string `json:"event"`
	Promoter string `json:"promoter"`
	// Action is "removed" or "rejected".
	Action string `json:"action"`
}

// InviteResponse reports the invitation outcome.
type InviteResponse struct {
	AutoAccepted bool                    `json:"auto_accepted"`
	Cascade      []CascadeEffectResponse `json:"cascade"`
}

func cascadeResponses(effects []domain.CascadeEffect) []CascadeEffectResponse {
	out := make([]CascadeEffectResponse, 0, len(effects))
	for _, e := range effects {
		action := "rejected"
		if e.Removed {
			action = "removed"
		}
		out = append(out, CascadeEffectResponse{Event: e.EventName, Promoter: e.Promoter, Action: action})
	}
	return out
}

// Invite godoc
// @Summary Invite an account to an event
// @Description Invite an account to an event. A high priority invitation to a staff account is accepted immediately and removes or rejects the invitee's conflicting commitments, unless a high priority commitment already occupies the slot.
// @Tags events
// @Accept json
// @Produce json
// @Param promoter path string true "Promoter account name"
// @Param eventName path string true "Event name"
// @Param invite body InviteRequest true "Invitee account name"
// @Success 200 {object} helpers.APIResponse "data contains the invitation outcome"
// @Failure 404 {object} helpers.APIResponse "error.code: account-not-found, event-not-found"
// @Failure 409 {object} helpers.APIResponse "error.code: already-invited, already-attending-conflict"
// @Router /events/{promoter}/{eventName}/invitations [post]
func (c *CalendarController) Invite(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.Service.Invite(r.Context(), req.Invitee, r.PathValue("promoter"), r.PathValue("eventName"))
	if err != nil {
		helpers.WriteRejection(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteResponse{
		AutoAccepted: out.AutoAccepted,
		Cascade:      cascadeResponses(out.Cascade),
	})
}

// RespondRequest is the request body for answering an invitation.
type RespondRequest struct {
	Invitee  string `json:"invitee"`
	Response string `json:"response"`
}

// Validate implements Validator.
func (r RespondRequest) Validate() []string {
	var errs []string
	if r.Invitee == "" {
		errs = append(errs, "invitee is required")
	}
	if r.Response == "" {
		errs = append(errs, "response is required")
	}
	return errs
}

// RespondResponse reports the recorded response and any cascaded rejections.
type RespondResponse struct {
	Response string                  `json:"response"`
	Cascade  []CascadeEffectResponse `json:"cascade"`
}

// Respond godoc
// @Summary Answer an invitation
// @Description Record an invitee's one-shot accept or reject. Accepting auto-rejects the invitee's other conflicting invitations.
// @Tags events
// @Accept json
// @Produce json
// @Param promoter path string true "Promoter account name"
// @Param eventName path string true "Event name"
// @Param response body RespondRequest true "Invitee and response token"
// @Success 200 {object} helpers.APIResponse "data contains the response outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid-response"
// @Failure 404 {object} helpers.APIResponse "error.code: account-not-found, event-not-found"
// @Failure 409 {object} helpers.APIResponse "error.code: not-invited, already-responded"
// @Router /events/{promoter}/{eventName}/responses [post]
func (c *CalendarController) Respond(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.Service.Respond(r.Context(), req.Invitee, r.PathValue("promoter"), r.PathValue("eventName"), req.Response)
	if err != nil {
		helpers.WriteRejection(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RespondResponse{
		Response: out.Response.String(),
		Cascade:  cascadeResponses(out.Cascade),
	})
}

// InviteeStatusResponse is one invitee with their answer state.
type InviteeStatusResponse struct {
	Name string `json:"name"`
	// Status is "accept", "reject", or "no_answer".
	Status string `json:"status"`
}

// EventDetailsResponse is the full view of one event.
type EventDetailsResponse struct {
	Name     string                  `json:"name"`
	Promoter string                  `json:"promoter"`
	Priority string                  `json:"priority"`
	When     WhenRequest             `json:"when"`
	Topics   []string                `json:"topics"`
	Invitees []InviteeStatusResponse `json:"invitees"`
}

// EventDetails godoc
// @Summary Show an event
// @Description Show an event's schedule slot, topics, and invitation list with per-invitee answer state.
// @Tags events
// @Produce json
// @Param promoter path string true "Promoter account name"
// @Param eventName path string true "Event name"
// @Success 200 {object} helpers.APIResponse "data contains the event details"
// @Failure 404 {object} helpers.APIResponse "error.code: account-not-found, event-not-found"
// @Router /events/{promoter}/{eventName} [get]
func (c *CalendarController) EventDetails(w http.ResponseWriter, r *http.Request) {
	ev, err := c.Service.EventDetails(r.Context(), r.PathValue("promoter"), r.PathValue("eventName"))
	if err != nil {
		helpers.WriteRejection(w, err)
		return
	}
	when := ev.When()
	out := EventDetailsResponse{
		Name:     ev.Name(),
		Promoter: ev.Promoter(),
		Priority: ev.Priority().String(),
		When:     WhenRequest{Year: when.Year(), Month: int(when.Month()), Day: when.Day(), Hour: when.Hour()},
		Topics:   ev.Topics(),
	}
	for _, name := range ev.InvitedNames() {
		status := domain.StatusNoAnswer
		switch {
		case ev.IsAccepted(name):
			status = domain.StatusAccept
		case ev.IsRejected(name):
			status = domain.StatusReject
		}
		out.Invitees = append(out.Invitees, InviteeStatusResponse{Name: name, Status: status})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// RankedEventResponse is one event in a topic search result.
type RankedEventResponse struct {
	Name     string   `json:"name"`
	Promoter string   `json:"promoter"`
	Topics   []string `json:"topics"`
	Matches  int      `json:"matches"`
}

// SearchTopics godoc
// @Summary Search events by topics
// @Description List every event covering at least one query topic, ranked by matching topic count, then event name, then promoter name.
// @Tags topics
// @Produce json
// @Param topic query []string true "Query topics (repeatable)"
// @Success 200 {object} helpers.APIResponse "data contains the ranked event list"
// @Router /topics [get]
func (c *CalendarController) SearchTopics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()["topic"]
	if len(query) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "at least one topic is required")
		return
	}
	events := c.Service.SearchTopics(r.Context(), query)
	out := make([]RankedEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, RankedEventResponse{
			Name:     ev.Name(),
			Promoter: ev.Promoter(),
			Topics:   ev.Topics(),
			Matches:  ev.MatchingTopicCount(query),
		})
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
