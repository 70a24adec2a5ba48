package audit

import "github.com/rs/zerolog"

type Event struct {
	UserID   *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Sink recibe los eventos ya drenados de la fila. En producción es
// el Logger respaldado por la base; las pruebas enchufan uno nulo.
type Sink interface {
	Log(userID *string, action, entity string, entityID *string, metadata any) error
}

type Dispatcher struct {
	logger Sink
	queue  chan Event
	log    zerolog.Logger
}

func NewDispatcher(logger Sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// fila llena: se descarta, la auditoría nunca bloquea la API
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
