package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	delivery "sharedcalendar/internal/delivery/http"
	"sharedcalendar/internal/delivery/http/controllers"
	"sharedcalendar/internal/delivery/http/helpers"
	"sharedcalendar/internal/repository/memory"
	"sharedcalendar/internal/services"
)

type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func newServer() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewCalendarService(memory.NewDirectory(), nil, logger)
	return delivery.NewRouter(controllers.NewCalendarController(logger, svc), logger)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.Nil(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func register(t *testing.T, h http.Handler, name, accountType string) {
	t.Helper()
	rec, _ := doJSON(t, h, http.MethodPost, "/accounts",
		controllers.RegisterAccountRequest{Name: name, Type: accountType})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func createEvent(t *testing.T, h http.Handler, req controllers.CreateEventRequest) {
	t.Helper()
	rec, _ := doJSON(t, h, http.MethodPost, "/events", req)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func midMay10at18() controllers.WhenRequest {
	return controllers.WhenRequest{Year: 2024, Month: 5, Day: 10, Hour: 18}
}

func TestRegisterAndListAccounts(t *testing.T) {
	h := newServer()

	rec, env := doJSON(t, h, http.MethodPost, "/accounts",
		controllers.RegisterAccountRequest{Name: "bob", Type: "staff"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var acc controllers.AccountResponse
	decodeData(t, env, &acc)
	assert.Equal(t, controllers.AccountResponse{Name: "bob", Type: "staff"}, acc)

	register(t, h, "alice", "manager")

	rec, env = doJSON(t, h, http.MethodPost, "/accounts",
		controllers.RegisterAccountRequest{Name: "bob", Type: "guest"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeAccountExists, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodPost, "/accounts",
		controllers.RegisterAccountRequest{Name: "dave", Type: "wizard"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeInvalidType, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodPost, "/accounts",
		controllers.RegisterAccountRequest{Name: "eve"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeBadRequest, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodGet, "/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var accs []controllers.AccountResponse
	decodeData(t, env, &accs)
	require.Len(t, accs, 2)
	assert.Equal(t, "alice", accs[0].Name)
	assert.Equal(t, "bob", accs[1].Name)
}

func TestCreateEvent(t *testing.T) {
	h := newServer()
	register(t, h, "alice", "manager")
	register(t, h, "bob", "staff")
	register(t, h, "gary", "guest")

	rec, env := doJSON(t, h, http.MethodPost, "/events", controllers.CreateEventRequest{
		Promoter: "alice", Name: "Party", Priority: "mid",
		When: midMay10at18(), Topics: []string{"music", "food"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var sum controllers.EventSummary
	decodeData(t, env, &sum)
	assert.Equal(t, "Party", sum.Name)
	assert.Equal(t, "alice", sum.Promoter)
	assert.Equal(t, 1, sum.Invited)
	assert.Equal(t, 1, sum.Accepted)
	assert.Equal(t, 0, sum.Unanswered)

	rec, env = doJSON(t, h, http.MethodPost, "/events", controllers.CreateEventRequest{
		Promoter: "gary", Name: "X", Priority: "mid", When: midMay10at18(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeGuestForbidden, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodPost, "/events", controllers.CreateEventRequest{
		Promoter: "bob", Name: "X", Priority: "high", When: midMay10at18(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeStaffHigh, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodPost, "/events", controllers.CreateEventRequest{
		Promoter: "alice", Name: "Second", Priority: "mid", When: midMay10at18(),
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeBusyOnDate, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodPost, "/events", controllers.CreateEventRequest{
		Promoter: "nobody", Name: "X", Priority: "mid", When: midMay10at18(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeAccountNotFound, env.Error.Code)
}

func TestInviteAndRespond(t *testing.T) {
	h := newServer()
	register(t, h, "alice", "manager")
	register(t, h, "bob", "staff")
	createEvent(t, h, controllers.CreateEventRequest{
		Promoter: "alice", Name: "Party", Priority: "mid",
		When: midMay10at18(), Topics: []string{"music"},
	})

	rec, env := doJSON(t, h, http.MethodPost, "/events/alice/Party/invitations",
		controllers.InviteRequest{Invitee: "bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	var inv controllers.InviteResponse
	decodeData(t, env, &inv)
	assert.False(t, inv.AutoAccepted)
	assert.Empty(t, inv.Cascade)

	rec, env = doJSON(t, h, http.MethodPost, "/events/alice/Party/invitations",
		controllers.InviteRequest{Invitee: "bob"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeAlreadyInvited, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodGet, "/events/alice/Party", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var details controllers.EventDetailsResponse
	decodeData(t, env, &details)
	assert.Equal(t, "Party", details.Name)
	assert.Equal(t, "mid", details.Priority)
	assert.Equal(t, midMay10at18(), details.When)
	require.Len(t, details.Invitees, 2)
	assert.Equal(t, controllers.InviteeStatusResponse{Name: "alice", Status: "accept"}, details.Invitees[0])
	assert.Equal(t, controllers.InviteeStatusResponse{Name: "bob", Status: "no_answer"}, details.Invitees[1])

	rec, env = doJSON(t, h, http.MethodPost, "/events/alice/Party/responses",
		controllers.RespondRequest{Invitee: "bob", Response: "accept"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp controllers.RespondResponse
	decodeData(t, env, &resp)
	assert.Equal(t, "accept", resp.Response)
	assert.Empty(t, resp.Cascade)

	rec, env = doJSON(t, h, http.MethodPost, "/events/alice/Party/responses",
		controllers.RespondRequest{Invitee: "bob", Response: "reject"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeAlreadyResponded, env.Error.Code)
}

func TestInviteEscalation(t *testing.T) {
	h := newServer()
	register(t, h, "alice", "manager")
	register(t, h, "carol", "manager")
	register(t, h, "bob", "staff")
	createEvent(t, h, controllers.CreateEventRequest{
		Promoter: "alice", Name: "Party", Priority: "mid", When: midMay10at18(),
	})
	createEvent(t, h, controllers.CreateEventRequest{
		Promoter: "carol", Name: "Summit", Priority: "high", When: midMay10at18(),
	})

	rec, _ := doJSON(t, h, http.MethodPost, "/events/alice/Party/invitations",
		controllers.InviteRequest{Invitee: "bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, h, http.MethodPost, "/events/alice/Party/responses",
		controllers.RespondRequest{Invitee: "bob", Response: "accept"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doJSON(t, h, http.MethodPost, "/events/carol/Summit/invitations",
		controllers.InviteRequest{Invitee: "bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	var inv controllers.InviteResponse
	decodeData(t, env, &inv)
	assert.True(t, inv.AutoAccepted)
	require.Len(t, inv.Cascade, 1)
	assert.Equal(t, controllers.CascadeEffectResponse{
		Event: "Party", Promoter: "alice", Action: "rejected",
	}, inv.Cascade[0])

	rec, env = doJSON(t, h, http.MethodGet, "/accounts/bob/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sums []controllers.EventSummary
	decodeData(t, env, &sums)
	require.Len(t, sums, 2)
	assert.Equal(t, "Party", sums[0].Name)
	assert.Equal(t, 1, sums[0].Rejected)
	assert.Equal(t, "Summit", sums[1].Name)
	assert.Equal(t, 2, sums[1].Accepted)
}

func TestListAccountEventsNotFound(t *testing.T) {
	h := newServer()
	rec, env := doJSON(t, h, http.MethodGet, "/accounts/nobody/events", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeAccountNotFound, env.Error.Code)
}

func TestSearchTopics(t *testing.T) {
	h := newServer()
	register(t, h, "alice", "manager")
	register(t, h, "bob", "staff")
	createEvent(t, h, controllers.CreateEventRequest{
		Promoter: "alice", Name: "Party", Priority: "mid",
		When: midMay10at18(), Topics: []string{"music", "food"},
	})
	createEvent(t, h, controllers.CreateEventRequest{
		Promoter: "bob", Name: "Jam", Priority: "mid",
		When:     controllers.WhenRequest{Year: 2024, Month: 5, Day: 11, Hour: 20},
		Topics:   []string{"music"},
	})

	rec, env := doJSON(t, h, http.MethodGet, "/topics", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeBadRequest, env.Error.Code)

	rec, env = doJSON(t, h, http.MethodGet, "/topics?topic=music&topic=food", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ranked []controllers.RankedEventResponse
	decodeData(t, env, &ranked)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Party", ranked[0].Name)
	assert.Equal(t, 2, ranked[0].Matches)
	assert.Equal(t, "Jam", ranked[1].Name)
	assert.Equal(t, 1, ranked[1].Matches)

	rec, env = doJSON(t, h, http.MethodGet, "/topics?topic=knitting", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ranked = nil
	decodeData(t, env, &ranked)
	assert.Empty(t, ranked)
}
