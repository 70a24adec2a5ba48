package wizard

import (
	"reflect"
	"testing"
)

func TestStepStaysWithinBounds(t *testing.T) {
	sequences := [][]Action{
		{NextStep{}, NextStep{}, NextStep{}, NextStep{}, NextStep{}, NextStep{}, NextStep{}},
		{PrevStep{}, PrevStep{}, PrevStep{}},
		{NextStep{}, PrevStep{}, PrevStep{}, NextStep{}, NextStep{}, NextStep{}, NextStep{}, NextStep{}, NextStep{}},
	}

	for i, seq := range sequences {
		s := Initial()
		for _, a := range seq {
			s = Reduce(s, a)
			if s.CurrentStep < StepService || s.CurrentStep > StepPayment {
				t.Fatalf("sequence %d: step %d out of bounds", i, s.CurrentStep)
			}
		}
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := Initial()
	s = Reduce(s, SetService{Service: ServiceOption{ID: "mens-cuts", Title: "CORTES DE CABALLERO"}})
	s = Reduce(s, SetBarber{Barber: BarberOption{ID: "b1", FullName: "Carlos"}})
	s = Reduce(s, SetDateTime{DateTime: DateTime{Date: "2025-06-10", Time: "10:00:00"}})
	s = Reduce(s, SetCustomerInfo{Info: CustomerInfo{Name: "Ana", Email: "ana@example.com"}})
	s = Reduce(s, SetTotalPrice{Amount: 120})
	s = Reduce(s, SetError{Field: FieldSubmit, Message: "boom"})
	s = Reduce(s, NextStep{})
	s = Reduce(s, NextStep{})

	got := Reduce(s, Reset{})
	if !reflect.DeepEqual(got, Initial()) {
		t.Fatalf("reset state differs from initial: %+v", got)
	}
}

func TestSetServiceClearsFieldError(t *testing.T) {
	s := Reduce(Initial(), SetError{Field: FieldService, Message: "Por favor selecciona un servicio"})

	svc := ServiceOption{ID: "mens-cuts", Title: "CORTES DE CABALLERO"}
	s = Reduce(s, SetService{Service: svc})

	if s.SelectedService == nil || s.SelectedService.ID != "mens-cuts" {
		t.Fatalf("selected service not set: %+v", s.SelectedService)
	}
	if _, ok := s.Errors[FieldService]; ok {
		t.Fatal("service error should be cleared after SetService")
	}
}

func TestSetDateTimeCommitsSlot(t *testing.T) {
	s := Reduce(Initial(), SetDateTime{DateTime: DateTime{Date: "2025-06-10", Time: "10:00:00"}})

	if s.SelectedDateTime == nil {
		t.Fatal("date time not set")
	}
	if s.SelectedDateTime.Date != "2025-06-10" || s.SelectedDateTime.Time != "10:00:00" {
		t.Fatalf("unexpected date time: %+v", s.SelectedDateTime)
	}
}

func TestClearErrorIsIdempotent(t *testing.T) {
	s := Reduce(Initial(), SetError{Field: FieldBarber, Message: "Error al cargar los barberos."})

	once := Reduce(s, ClearError{Field: FieldBarber})
	twice := Reduce(once, ClearError{Field: FieldBarber})

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("clearing twice differs from once:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestGoToStepJumpsUnguarded(t *testing.T) {
	s := Reduce(Initial(), GoToStep{Step: StepDateTime})
	if s.CurrentStep != StepDateTime {
		t.Fatalf("expected step %d, got %d", StepDateTime, s.CurrentStep)
	}

	// fuera de rango: no-op
	s = Reduce(s, GoToStep{Step: Step(9)})
	if s.CurrentStep != StepDateTime {
		t.Fatalf("out-of-range jump should be ignored, got step %d", s.CurrentStep)
	}
}

type bogusAction struct{}

func (bogusAction) isAction() {}

func TestUnknownActionIsNoOp(t *testing.T) {
	s := Reduce(Initial(), SetService{Service: ServiceOption{ID: "svc"}})
	got := Reduce(s, bogusAction{})
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("unknown action mutated state: %+v", got)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := Reduce(Initial(), SetError{Field: FieldService, Message: "x"})
	before := len(s.Errors)

	_ = Reduce(s, ClearError{Field: FieldService})
	_ = Reduce(s, SetError{Field: FieldBarber, Message: "y"})

	if len(s.Errors) != before {
		t.Fatalf("input state errors mutated: %v", s.Errors)
	}
}
