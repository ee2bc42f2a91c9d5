package consumerWorker

import (
	"context"
	"encoding/json"
	"net/url"

	"eventdash/internal/dto"
	"eventdash/internal/gateway"
	"eventdash/internal/mailer"
	"eventdash/internal/rabbit"

	"github.com/wb-go/wbf/zlog"
)

// Reader drains the reminder queue and fans each job out to its channel:
// email through the SMTP mailer, whatsapp and in-app through the upstream
// notification endpoint.
type Reader struct {
	RMQ    *rabbit.Client
	gw     gateway.Gateway
	mail   *mailer.Mailer
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, gw gateway.Gateway, mail *mailer.Mailer) *Reader {
	return &Reader{
		RMQ:  rmq,
		gw:   gw,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("reminder worker started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var job dto.ReminderJob
			if err := json.Unmarshal(body, &job); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("failed to unmarshal reminder job: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Str("event_uuid", job.EventUUID).
				Str("send_method", job.SendMethod).
				Int("recipients", len(job.Recipients)).
				Msg("received reminder job")

			switch job.SendMethod {
			case "email":
				r.deliverEmail(job)
			default:
				r.deliverUpstream(cctx, job)
			}
			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("reminder worker stopped by context")
	}()
}

func (r *Reader) deliverEmail(job dto.ReminderJob) {
	sent := 0
	for _, recipient := range job.Recipients {
		if err := r.mail.SendReminderEmail(
			job.EventTitle,
			job.EventStartDate,
			job.EventEndDate,
			job.Subject,
			job.Message,
			recipient,
		); err != nil {
			zlog.Logger.Warn().
				Err(err).
				Str("recipient", recipient).
				Msg("failed to send reminder email")
			continue
		}
		sent++
	}
	zlog.Logger.Info().
		Str("event_uuid", job.EventUUID).
		Int("sent", sent).
		Int("total", len(job.Recipients)).
		Msg("reminder emails processed")
}

func (r *Reader) deliverUpstream(ctx context.Context, job dto.ReminderJob) {
	message := job.Message
	if job.SendMethod == "whatsapp" {
		// WhatsApp sends a provider template, not the composed body.
		message = "Template"
	}

	payload := url.Values{
		"event_id":          {job.EventUUID},
		"send_to":           {"All"},
		"send_method":       {job.SendMethod},
		"subject":           {job.Subject},
		"message":           {message},
		"start_date":        {job.EventStartDate},
		"delivery_schedule": {job.DeliverySchedule},
		"start_date_time":   {"01"},
		"start_date_type":   {"am"},
		"end_date":          {job.EventEndDate},
		"end_date_time":     {"01"},
		"end_date_type":     {"pm"},
		"no_of_times":       {"1"},
		"hour_interval":     {"1"},
		"status":            {"1"},
	}

	err := r.gw.SendNotification(ctx, payload)
	if err == nil {
		zlog.Logger.Info().
			Str("event_uuid", job.EventUUID).
			Str("send_method", job.SendMethod).
			Msg("reminder handed to upstream notifier")
		return
	}

	// The upstream notifier regularly exceeds its own timeout while still
	// delivering; a timeout here is treated as delivered. Known quirk of the
	// platform, kept until the backend reports real completion.
	if gateway.IsTimeout(err) {
		zlog.Logger.Warn().
			Str("event_uuid", job.EventUUID).
			Msg("upstream notifier timed out, assuming delivery")
		return
	}

	zlog.Logger.Error().
		Err(err).
		Str("event_uuid", job.EventUUID).
		Msg("upstream notifier rejected reminder")
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
