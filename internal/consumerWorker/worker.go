package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"waitlist/internal/dto"
	"waitlist/internal/mailer"
	"waitlist/internal/rabbit"
)

type Reader struct {
	RMQ    *rabbit.Client
	smtp   mailer.Config
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, smtp mailer.Config) *Reader {
	return &Reader{
		RMQ:  rmq,
		smtp: smtp,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("confirmation mail worker started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.OrderConfirmationMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("Failed to unmarshal message: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Str("order_id", msg.OrderID.String()).
				Str("email", msg.Email).
				Msg("received confirmation message")

			if err := mailer.SendOrderConfirmation(&zlog.Logger, r.smtp, msg.Email); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Str("order_id", msg.OrderID.String()).
					Msg("Failed to send confirmation e-mail")
			}

			// Mail failures are not requeued; the order itself is
			// already durable.
			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("confirmation mail worker stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
