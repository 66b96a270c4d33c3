// Package repl implements the line-oriented command interface of the
// scheduling engine. It parses commands, delegates every decision to the
// Calendar service, and prints the outcome; no scheduling rule lives here.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"sharedcalendar/internal/domain"
)

// Interpreter reads commands line by line and writes results.
type Interpreter struct {
	calendar domain.Calendar
	sc       *bufio.Scanner
	out      io.Writer
	logger   *slog.Logger
}

// New returns an interpreter reading from in and writing to out.
func New(calendar domain.Calendar, in io.Reader, out io.Writer, logger *slog.Logger) *Interpreter {
	return &Interpreter{
		calendar: calendar,
		sc:       bufio.NewScanner(in),
		out:      out,
		logger:   logger,
	}
}

// Run executes commands until exit or end of input.
func (i *Interpreter) Run(ctx context.Context) error {
	for i.sc.Scan() {
		line := strings.Split(i.sc.Text(), " ")
		switch strings.ToLower(line[0]) {
		case "exit":
			i.printf("Bye!")
			return nil
		case "help":
			i.help()
		case "register":
			i.register(ctx, line)
		case "accounts":
			i.accounts(ctx)
		case "create":
			i.create(ctx, line)
		case "events":
			i.events(ctx, line)
		case "invite":
			i.invite(ctx, line)
		case "response":
			i.response(ctx, line)
		case "event":
			i.event(ctx, line)
		case "topics":
			i.topics(ctx, line)
		default:
			i.unknown(line)
		}
	}
	return i.sc.Err()
}

func (i *Interpreter) printf(format string, args ...any) {
	fmt.Fprintf(i.out, format+"\n", args...)
}

// readLine fetches the next input line for multi-line commands.
func (i *Interpreter) readLine() (string, bool) {
	if !i.sc.Scan() {
		return "", false
	}
	return i.sc.Text(), true
}

func (i *Interpreter) register(ctx context.Context, line []string) {
	if len(line) < 3 {
		i.unknown(line)
		return
	}
	if _, err := i.calendar.RegisterAccount(ctx, line[1], line[2]); err != nil {
		i.printError(err, "")
		return
	}
	i.printf("%s was registered.", line[1])
}

func (i *Interpreter) accounts(ctx context.Context) {
	accs := i.calendar.Accounts(ctx)
	if len(accs) == 0 {
		i.printf("No account registered.")
		return
	}
	i.printf("All accounts:")
	for _, acc := range accs {
		i.printf("%s [%s]", acc.Name, acc.Type)
	}
}

func (i *Interpreter) create(ctx context.Context, line []string) {
	if len(line) < 2 {
		i.unknown(line)
		return
	}
	accName := line[1]

	eventName, ok := i.readLine()
	if !ok {
		i.unknown(line)
		return
	}
	dateLine, ok := i.readLine()
	if !ok {
		i.unknown(line)
		return
	}
	topicsLine, ok := i.readLine()
	if !ok {
		i.unknown(line)
		return
	}

	fields := strings.Split(dateLine, " ")
	if len(fields) < 5 {
		i.unknown(line)
		return
	}
	priority := fields[0]
	nums := make([]int, 4)
	for n := 0; n < 4; n++ {
		v, err := strconv.Atoi(fields[n+1])
		if err != nil {
			i.unknown(line)
			return
		}
		nums[n] = v
	}
	when := domain.DateHour(nums[0], nums[1], nums[2], nums[3])
	topics := strings.Split(topicsLine, " ")

	if _, err := i.calendar.CreateEvent(ctx, accName, eventName, priority, when, topics); err != nil {
		i.printError(err, accName)
		return
	}
	i.printf("%s is scheduled.", eventName)
}

func (i *Interpreter) events(ctx context.Context, line []string) {
	if len(line) < 2 {
		i.unknown(line)
		return
	}
	accName := line[1]
	evs, err := i.calendar.AccountEvents(ctx, accName)
	if err != nil {
		i.printError(err, "")
		return
	}
	if len(evs) == 0 {
		i.printf("Account %s has no events.", accName)
		return
	}
	i.printf("Account %s events:", accName)
	for _, ev := range evs {
		i.printf("%s status [invited %d] [accepted %d] [rejected %d] [unanswered %d]",
			ev.Name(), ev.InvitedCount(), ev.AcceptedCount(), ev.RejectedCount(), ev.UnansweredCount())
	}
}

func (i *Interpreter) invite(ctx context.Context, line []string) {
	if len(line) < 2 {
		i.unknown(line)
		return
	}
	invitee := line[1]

	detail, ok := i.readLine()
	if !ok {
		i.unknown(line)
		return
	}
	fields := strings.Split(detail, " ")
	if len(fields) < 2 {
		i.unknown(line)
		return
	}
	promoter := fields[0]
	eventName := strings.Join(fields[1:], " ")

	out, err := i.calendar.Invite(ctx, invitee, promoter, eventName)
	if err != nil {
		i.printError(err, promoter)
		return
	}
	if !out.AutoAccepted {
		i.printf("%s was invited.", invitee)
		return
	}
	i.printf("%s accepted the invitation.", invitee)
	for _, effect := range out.Cascade {
		if effect.Removed {
			i.printf("%s promoted by %s was removed.", effect.EventName, effect.Promoter)
		} else {
			i.printf("%s promoted by %s was rejected.", effect.EventName, effect.Promoter)
		}
	}
}

func (i *Interpreter) response(ctx context.Context, line []string) {
	if len(line) < 2 {
		i.unknown(line)
		return
	}
	invitee := line[1]

	detail, ok := i.readLine()
	if !ok {
		i.unknown(line)
		return
	}
	fields := strings.Split(detail, " ")
	if len(fields) < 2 {
		i.unknown(line)
		return
	}
	promoter := fields[0]
	eventName := strings.Join(fields[1:], " ")

	response, ok := i.readLine()
	if !ok {
		i.unknown(line)
		return
	}

	out, err := i.calendar.Respond(ctx, invitee, promoter, eventName, response)
	if err != nil {
		i.printError(err, promoter)
		return
	}
	i.printf("Account %s has replied %s to the invitation.", invitee, response)
	for _, effect := range out.Cascade {
		i.printf("%s promoted by %s was rejected.", effect.EventName, effect.Promoter)
	}
}

func (i *Interpreter) event(ctx context.Context, line []string) {
	if len(line) < 3 {
		i.unknown(line)
		return
	}
	promoter := line[1]
	eventName := strings.Join(line[2:], " ")

	ev, err := i.calendar.EventDetails(ctx, promoter, eventName)
	if err != nil {
		i.printError(err, promoter)
		return
	}
	when := ev.When()
	i.printf("%s occurs on %d-%02d-%d %dh:",
		ev.Name(), when.Day(), int(when.Month()), when.Year(), when.Hour())
	for _, name := range ev.InvitedNames() {
		switch {
		case ev.IsAccepted(name):
			i.printf("%s [%s]", name, domain.StatusAccept)
		case ev.IsRejected(name):
			i.printf("%s [%s]", name, domain.StatusReject)
		default:
			i.printf("%s [%s]", name, domain.StatusNoAnswer)
		}
	}
}

func (i *Interpreter) topics(ctx context.Context, line []string) {
	if len(line) < 2 {
		i.unknown(line)
		return
	}
	query := line[1:]
	events := i.calendar.SearchTopics(ctx, query)
	if len(events) == 0 {
		i.printf("No events on those topics.")
		return
	}
	i.printf("Events on topics %s:", strings.Join(query, " "))
	for _, ev := range events {
		i.printf("%s promoted by %s on %s", ev.Name(), ev.Promoter(), strings.Join(ev.Topics(), " "))
	}
}

func (i *Interpreter) help() {
	i.printf("Available commands:")
	i.printf("register - registers a new account")
	i.printf("accounts - lists all registered accounts")
	i.printf("create - creates a new event")
	i.printf("events - lists all events of an account")
	i.printf("invite - invites an user to an event")
	i.printf("response - response to an invitation")
	i.printf("event - shows detailed information of an event")
	i.printf("topics - shows all events that cover a list of topics")
	i.printf("help - shows the available commands")
	i.printf("exit - terminates the execution of the program")
}

func (i *Interpreter) unknown(line []string) {
	if len(line) == 1 {
		i.printf("Unknown command %s. Type help to see available commands.", strings.ToUpper(line[0]))
		return
	}
	for _, token := range line {
		i.printf("Unknown command %s. Type help to see available commands.", strings.ToUpper(token))
	}
}

// printError renders a rejection. container is the account named in "in
// account X" phrasings; commands without one pass "".
func (i *Interpreter) printError(err error, container string) {
	var op *domain.OpError
	subject := ""
	if errors.As(err, &op) {
		subject = op.Subject
	}
	switch {
	case errors.Is(err, domain.ErrAccountExists):
		i.printf("Account %s already exists.", subject)
	case errors.Is(err, domain.ErrUnknownAccountType):
		i.printf("Unknown account type.")
	case errors.Is(err, domain.ErrAccountNotFound):
		i.printf("Account %s does not exist.", subject)
	case errors.Is(err, domain.ErrUnknownPriority):
		i.printf("Unknown priority type.")
	case errors.Is(err, domain.ErrGuestForbidden):
		i.printf("Guest account %s cannot create events.", subject)
	case errors.Is(err, domain.ErrStaffHighForbidden):
		i.printf("Account %s cannot create high priority events.", subject)
	case errors.Is(err, domain.ErrEventExists):
		i.printf("%s already exists in account %s.", subject, container)
	case errors.Is(err, domain.ErrBusyOnDate):
		i.printf("Account %s is busy.", subject)
	case errors.Is(err, domain.ErrEventNotFound):
		i.printf("%s does not exist in account %s.", subject, container)
	case errors.Is(err, domain.ErrAlreadyInvited):
		i.printf("Account %s was already invited.", subject)
	case errors.Is(err, domain.ErrAlreadyAttending):
		i.printf("Account %s already attending another event.", subject)
	case errors.Is(err, domain.ErrUnknownResponse):
		i.printf("Unknown event response.")
	case errors.Is(err, domain.ErrNotInvited):
		i.printf("Account %s is not on the invitation list.", subject)
	case errors.Is(err, domain.ErrAlreadyResponded):
		i.printf("Account %s has already responded.", subject)
	default:
		i.logger.Error("unexpected command failure", "err", err)
		i.printf("%v", err)
	}
}
