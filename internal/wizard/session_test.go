package wizard

import (
	"sync"
	"testing"
	"time"
)

func newTestSession() *Session {
	return &Session{ID: "test", state: Initial(), updatedAt: time.Now()}
}

func TestStaleSlotFetchIsDiscarded(t *testing.T) {
	sess := newTestSession()

	gen1 := sess.BeginSlotFetch("2025-06-10")
	gen2 := sess.BeginSlotFetch("2025-06-11")

	if sess.SlotFetchCurrent(gen1) {
		t.Fatal("first generation should be stale after second fetch")
	}
	if !sess.SlotFetchCurrent(gen2) {
		t.Fatal("latest generation should be current")
	}
}

func TestDateChangeSupersedesSelectedDateTime(t *testing.T) {
	sess := newTestSession()

	sess.BeginSlotFetch("2025-06-10")
	sess.Dispatch(SetDateTime{DateTime: DateTime{Date: "2025-06-10", Time: "10:00:00"}})

	sess.BeginSlotFetch("2025-06-11")

	if dt := sess.Snapshot().SelectedDateTime; dt != nil {
		t.Fatalf("stale selection should be cleared, got %+v", dt)
	}
}

func TestDateRefetchKeepsMatchingSelection(t *testing.T) {
	sess := newTestSession()

	sess.BeginSlotFetch("2025-06-10")
	sess.Dispatch(SetDateTime{DateTime: DateTime{Date: "2025-06-10", Time: "10:00:00"}})

	// recarga de la misma fecha: la selección sigue vigente
	sess.BeginSlotFetch("2025-06-10")

	if dt := sess.Snapshot().SelectedDateTime; dt == nil || dt.Time != "10:00:00" {
		t.Fatalf("selection for same date should survive refetch, got %+v", dt)
	}
}

func TestDispatchSerializesMutations(t *testing.T) {
	sess := newTestSession()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sess.Dispatch(NextStep{})
		}()
		go func() {
			defer wg.Done()
			sess.Dispatch(PrevStep{})
		}()
	}
	wg.Wait()

	step := sess.Snapshot().CurrentStep
	if step < StepService || step > StepPayment {
		t.Fatalf("step out of bounds after concurrent dispatch: %d", step)
	}
}

func submittableSession() *Session {
	sess := newTestSession()
	sess.Dispatch(
		SetService{Service: ServiceOption{ID: "mens-cuts"}},
		SetBarber{Barber: BarberOption{ID: "b1"}},
		SetDateTime{DateTime: DateTime{Date: "2025-06-10", Time: "10:00:00"}},
	)
	return sess
}

func TestBeginSubmitIsExclusive(t *testing.T) {
	sess := submittableSession()
	info := PaymentInfo{Method: PaymentCash}

	var mu sync.Mutex
	counts := map[SubmitStatus]int{}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, gate := sess.BeginSubmit(info)
			mu.Lock()
			counts[gate]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if counts[SubmitOK] != 1 {
		t.Fatalf("expected exactly one submit to pass the gate, got %d", counts[SubmitOK])
	}
	if counts[SubmitBusy] != 19 {
		t.Fatalf("expected 19 busy rejections, got %d", counts[SubmitBusy])
	}
}

func TestCompletedSessionRejectsResubmit(t *testing.T) {
	sess := submittableSession()
	info := PaymentInfo{Method: PaymentCash}

	if _, gate := sess.BeginSubmit(info); gate != SubmitOK {
		t.Fatalf("first submit gate = %v", gate)
	}
	sess.FinishSubmit(true)

	if sess.Snapshot().IsProcessing {
		t.Fatal("processing flag must clear after finish")
	}
	if !sess.Completed() {
		t.Fatal("session must be terminal after a successful submit")
	}

	// ventana de confirmación: reintentar no vuelve a pasar
	if _, gate := sess.BeginSubmit(info); gate != SubmitDone {
		t.Fatalf("resubmit on a confirmed session got gate %v", gate)
	}
}

func TestFailedSubmitLeavesSessionRetryable(t *testing.T) {
	sess := submittableSession()
	info := PaymentInfo{Method: PaymentCard}

	if _, gate := sess.BeginSubmit(info); gate != SubmitOK {
		t.Fatal("first submit should pass the gate")
	}
	sess.FinishSubmit(false)

	state := sess.Snapshot()
	if state.IsProcessing {
		t.Fatal("processing flag must clear after a failed submit")
	}
	if state.SelectedService == nil || state.SelectedBarber == nil || state.SelectedDateTime == nil {
		t.Fatal("selections must survive a failed submit")
	}

	if _, gate := sess.BeginSubmit(info); gate != SubmitOK {
		t.Fatal("failed submit must allow a retry")
	}
}

func TestBeginSubmitRejectsIncompleteState(t *testing.T) {
	sess := newTestSession()

	state, gate := sess.BeginSubmit(PaymentInfo{Method: PaymentCash})
	if gate != SubmitNotReady {
		t.Fatalf("gate = %v", gate)
	}
	if state.Errors[FieldSubmit] == "" {
		t.Fatalf("expected submit error, got %v", state.Errors)
	}
	if state.IsProcessing {
		t.Fatal("incomplete submit must not flip the processing flag")
	}
}

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(time.Minute)
	store.Start()
	defer store.Stop()

	sess := store.Create()
	if sess.ID == "" {
		t.Fatal("session must get an id")
	}

	got, ok := store.Get(sess.ID)
	if !ok || got != sess {
		t.Fatal("created session not retrievable")
	}

	store.Delete(sess.ID)
	if _, ok := store.Get(sess.ID); ok {
		t.Fatal("deleted session still retrievable")
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store := NewStore(time.Minute)
	store.Start()
	defer store.Stop()

	a := store.Create()
	b := store.Create()

	a.Dispatch(SetService{Service: ServiceOption{ID: "mens-cuts"}})

	if b.Snapshot().SelectedService != nil {
		t.Fatal("sessions must not share state")
	}
}
