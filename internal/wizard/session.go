package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ======================================================
// Session store (in-memory)
//
// Cada intento de reserva tiene su propia sesión. Todas las
// mutaciones pasan por Dispatch/Update, que serializa bajo el
// mutex de la sesión: nunca hay dos escrituras concurrentes
// sobre el mismo State.
// ======================================================

type Session struct {
	ID string

	mu        sync.Mutex
	state     State
	notes     string
	completed bool

	// Token de generación para descartar respuestas tardías de
	// slots cuando el usuario cambia de fecha con un fetch en vuelo.
	slotGen  uint64
	slotDate string

	updatedAt time.Time
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Dispatch(actions ...Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	s.updatedAt = time.Now()
	return s.state
}

// Update ejecuta fn sobre el estado actual bajo el lock de la
// sesión y persiste el resultado. Sirve para operaciones que
// necesitan leer y escribir de forma atómica (guardas de avance).
func (s *Session) Update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	s.updatedAt = time.Now()
	return s.state
}

func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.updatedAt = time.Now()
}

func (s *Session) Notes() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes
}

// SubmitStatus es el resultado de la puerta de entrada al envío
// terminal.
type SubmitStatus int

const (
	SubmitOK       SubmitStatus = iota
	SubmitBusy                  // ya hay un envío en curso
	SubmitDone                  // la sesión ya confirmó una reserva
	SubmitNotReady              // falta alguna de las tres selecciones
)

// BeginSubmit es el test-and-set del envío terminal: bajo el lock de
// la sesión verifica que no haya otro envío en curso ni una reserva
// ya confirmada, y recién entonces marca isProcessing. Dos submits
// simultáneos nunca pasan los dos.
func (s *Session) BeginSubmit(info PaymentInfo) (State, SubmitStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return s.state, SubmitDone
	}
	if s.state.IsProcessing {
		return s.state, SubmitBusy
	}
	if !ReadyToSubmit(s.state) {
		s.state = Reduce(s.state, SetError{
			Field:   FieldSubmit,
			Message: "Completa los pasos anteriores antes de pagar.",
		})
		s.updatedAt = time.Now()
		return s.state, SubmitNotReady
	}

	s.state = Reduce(s.state, SetPaymentInfo{Info: info})
	s.state = Reduce(s.state, SetProcessing{On: true})
	s.updatedAt = time.Now()
	return s.state, SubmitOK
}

// FinishSubmit cierra el envío. Con success la sesión queda
// terminal: solo puede consultarse hasta que el store la limpie,
// nunca volver a pagar.
func (s *Session) FinishSubmit(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, SetProcessing{On: false})
	if success {
		s.completed = true
	}
	s.updatedAt = time.Now()
}

func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// BeginSlotFetch registra la fecha consultada y devuelve la
// generación vigente. Si la fecha cambia y había una hora elegida
// para otra fecha, la selección anterior queda superada y se limpia.
func (s *Session) BeginSlotFetch(date string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slotGen++
	if s.slotDate != "" && s.slotDate != date {
		if dt := s.state.SelectedDateTime; dt != nil && dt.Date != date {
			s.state.SelectedDateTime = nil
		}
	}
	s.slotDate = date
	s.updatedAt = time.Now()
	return s.slotGen
}

// SlotFetchCurrent reporta si la generación sigue vigente; una
// respuesta con generación vieja se descarta.
func (s *Session) SlotFetchCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.slotGen
}

// ------------------------------------------------------

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start arranca el barrido de sesiones vencidas. Stop lo detiene;
// el ciclo de vida es explícito, no hay estado global ambiental.
func (st *Store) Start() {
	go st.sweep()
}

func (st *Store) Stop() {
	close(st.stop)
	<-st.done
}

func (st *Store) sweep() {
	defer close(st.done)
	ticker := time.NewTicker(st.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-st.ttl)
			st.mu.Lock()
			for id, sess := range st.sessions {
				sess.mu.Lock()
				stale := sess.updatedAt.Before(cutoff)
				sess.mu.Unlock()
				if stale {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}
}

func (st *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		state:     Initial(),
		updatedAt: time.Now(),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// DeleteAfter reaprovecha el store para el reset diferido tras la
// confirmación: pasado el delay la sesión desaparece.
func (st *Store) DeleteAfter(id string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		st.Delete(id)
	})
}
