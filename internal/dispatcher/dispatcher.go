// Package dispatcher routes interpreted commands to the store and
// scheduler and composes both the immediate reply and the asynchronous
// follow-up message.
package dispatcher

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"taskbot/internal/command"
	"taskbot/internal/domain"
	"taskbot/internal/message"
	"taskbot/internal/store"
)

const operatorMarker = "/tasks"

type Enqueuer interface {
	Enqueue(e domain.Envelope)
}

type Reminders interface {
	Arm(t domain.Task)
}

type Dispatcher struct {
	store     store.Store
	queue     Enqueuer
	reminders Reminders
}

func New(st store.Store, queue Enqueuer, reminders Reminders) *Dispatcher {
	return &Dispatcher{store: st, queue: queue, reminders: reminders}
}

// Handle interprets one inbound channel message and returns the immediate
// reply. Operator commands deliver their richer result asynchronously
// through the queue; the returned ack never waits on a delivery. Handle
// never panics on malformed input — every error becomes a reply.
func (d *Dispatcher) Handle(ctx context.Context, rawMessage, channelID string) domain.Reply {
	msg := command.StripTags(rawMessage)

	if strings.HasPrefix(msg, command.TodoMarker) {
		return d.createTask(ctx, msg, channelID)
	}

	if strings.Contains(msg, operatorMarker) {
		body, status := d.runOperation(ctx, msg, channelID)
		d.queue.Enqueue(domain.Envelope{
			ChannelID: channelID,
			Title:     message.TitleTask,
			Message:   body,
			Status:    status,
		})
		return domain.Reply{
			Title:   "message-formatted",
			Message: "<b><i>🎯 performed task operation: " + msg + "</i></b>",
			Status:  domain.StatusSuccess,
			Sender:  "sender",
		}
	}

	// Not a command: pass the message through unchanged.
	return domain.Reply{
		Title:   "Original Message",
		Message: msg,
		Status:  domain.StatusSuccess,
		Sender:  domain.SenderBot,
	}
}

func (d *Dispatcher) createTask(ctx context.Context, msg, channelID string) domain.Reply {
	fields, err := command.Parse(msg)
	if err != nil {
		var ve *command.ValidationError
		if errors.As(err, &ve) {
			d.queue.Enqueue(domain.Envelope{
				ChannelID: channelID,
				Title:     message.TitleTask,
				Message:   message.ComposeError(ve.Reason),
				Status:    domain.StatusError,
			})
			return domain.Reply{
				Title:   "message-formatted",
				Message: "<b><i>🎯 performed task operation: " + msg + "</i></b>",
				Status:  domain.StatusSuccess,
				Sender:  domain.SenderBot,
			}
		}
		return d.internalError(err, msg)
	}

	t := domain.Task{
		Description: fields.Description,
		AssignedTo:  fields.AssignedTo,
		DueDate:     fields.DueDate,
		DueTime:     fields.DueTime,
		DueAt:       fields.DueAt,
		ChannelID:   channelID,
	}
	id, err := d.store.Create(ctx, t)
	if err != nil {
		return d.internalError(err, msg)
	}
	t.ID = id
	d.reminders.Arm(t)

	log.Info().Str("task_id", id).Str("channel_id", channelID).Msg("task created")
	return domain.Reply{
		Title:   message.TitleNewTask,
		Message: message.ComposeTaskCreated(t, time.Now()),
		Status:  domain.StatusSuccess,
		Sender:  domain.SenderBot,
	}
}

// runOperation executes one operator command and returns the follow-up
// body and status. Lookup and validation failures become "error"-status
// messages; anything unexpected is logged and masked.
func (d *Dispatcher) runOperation(ctx context.Context, op, channelID string) (string, string) {
	body, err := d.dispatchOperation(ctx, op, channelID)
	if err == nil {
		return body, domain.StatusSuccess
	}

	var ve *command.ValidationError
	switch {
	case errors.As(err, &ve):
		return message.ComposeError(ve.Reason), domain.StatusError
	case errors.Is(err, store.ErrNotFound):
		return message.ComposeError(err.Error()), domain.StatusError
	default:
		log.Error().Err(err).Str("operation", op).Msg("task operation failed")
		return message.ComposeError("An error occured within app"), domain.StatusError
	}
}

func (d *Dispatcher) dispatchOperation(ctx context.Context, op, channelID string) (string, error) {
	switch {
	case strings.Contains(op, "/tasks-info"):
		return infoText, nil

	case strings.Contains(op, "/tasks-man"):
		return manText, nil

	case op == "/tasks":
		tasks, err := d.store.GetAll(ctx, channelID)
		if err != nil {
			return "", err
		}
		var open []domain.Task
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		return message.ComposeTaskList(open), nil

	case op == "/tasks-done":
		tasks, err := d.store.GetCompleted(ctx, channelID)
		if err != nil {
			return "", err
		}
		return message.ComposeCompletedTasks(tasks), nil

	case strings.Contains(op, "/tasks-delete"):
		id, err := taskIDArg(op, "/tasks-delete")
		if err != nil {
			return "", err
		}
		if err := d.store.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", &command.ValidationError{Reason: "task " + id + " not found"}
			}
			return "", err
		}
		return "🚯 Task deleted", nil

	case strings.Contains(op, "/tasks-done"):
		id, err := taskIDArg(op, "/tasks-done")
		if err != nil {
			return "", err
		}
		if err := d.store.MarkDone(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", &command.ValidationError{Reason: "task " + id + " not found"}
			}
			return "", err
		}
		t, err := d.store.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return message.ComposeTaskDone(t), nil
	}

	return "", &command.ValidationError{Reason: "unknown task operation, see /tasks-man"}
}

func (d *Dispatcher) internalError(err error, msg string) domain.Reply {
	log.Error().Err(err).Msg("task bot internal error")
	return domain.Reply{
		Title:   "message-formatted",
		Message: "<b><i>❌ task bot internal error for operation: " + msg + "</i></b>",
		Status:  domain.StatusError,
		Sender:  "sender",
	}
}

func taskIDArg(op, cmd string) (string, error) {
	rest := op[strings.Index(op, cmd)+len(cmd):]
	args := strings.Fields(rest)
	if len(args) == 0 {
		return "", &command.ValidationError{Reason: "task id required, e.g. " + cmd + " #1"}
	}
	return args[0], nil
}
