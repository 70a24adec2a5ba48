package wizard

import "testing"

func TestContinueWithoutSelectionBlocks(t *testing.T) {
	cases := []struct {
		name  string
		state State
		field string
	}{
		{"service missing", Initial(), FieldService},
		{
			"barber missing",
			withStep(withService(Initial()), StepBarber),
			FieldBarber,
		},
		{
			"datetime missing",
			withStep(withBarber(withService(Initial())), StepDateTime),
			FieldDateTime,
		},
		{
			"customer info missing",
			withStep(withDateTime(withBarber(withService(Initial()))), StepSummary),
			FieldCustomerInfo,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.state.CurrentStep
			next, ok := Continue(tc.state)
			if ok {
				t.Fatal("continue should be blocked")
			}
			if next.CurrentStep != before {
				t.Fatalf("step changed from %d to %d", before, next.CurrentStep)
			}
			if next.Errors[tc.field] == "" {
				t.Fatalf("expected error on field %q, got %v", tc.field, next.Errors)
			}
		})
	}
}

func TestSummaryRequiresAllSelections(t *testing.T) {
	// salto directo al resumen: la guarda debe exigir las tres
	// selecciones, no solo los datos de contacto
	s := withStep(withService(Initial()), StepSummary)
	s = Reduce(s, SetCustomerInfo{Info: CustomerInfo{Name: "Ana", Email: "ana@example.com"}})

	next, ok := Continue(s)
	if ok {
		t.Fatal("summary must not continue without barber and datetime")
	}
	if next.CurrentStep != StepSummary {
		t.Fatalf("step changed to %d", next.CurrentStep)
	}
	if next.Errors[FieldBarber] == "" {
		t.Fatalf("expected barber error, got %v", next.Errors)
	}
}

func TestContinueAdvancesWhenGuardPasses(t *testing.T) {
	s := withService(Initial())

	next, ok := Continue(s)
	if !ok {
		t.Fatalf("continue blocked: %v", next.Errors)
	}
	if next.CurrentStep != StepBarber {
		t.Fatalf("expected step %d, got %d", StepBarber, next.CurrentStep)
	}
	if len(next.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", next.Errors)
	}
}

func TestContinueOnTerminalStepIsBlocked(t *testing.T) {
	s := withStep(Initial(), StepPayment)

	next, ok := Continue(s)
	if ok {
		t.Fatal("terminal step must not continue")
	}
	if next.CurrentStep != StepPayment {
		t.Fatalf("step changed to %d", next.CurrentStep)
	}
}

func TestReadyToSubmitRequiresAllSelections(t *testing.T) {
	if ReadyToSubmit(Initial()) {
		t.Fatal("empty state must not be submittable")
	}

	full := withDateTime(withBarber(withService(Initial())))
	if !ReadyToSubmit(full) {
		t.Fatal("full state should be submittable")
	}
}

func TestProgressForIsPureFunctionOfStep(t *testing.T) {
	cases := []struct {
		step    Step
		percent float64
	}{
		{StepService, 0},
		{StepDateTime, 50},
		{StepPayment, 100},
	}

	for _, tc := range cases {
		p := ProgressFor(tc.step)
		if p.Percent != tc.percent {
			t.Fatalf("step %d: expected %.0f%%, got %.2f%%", tc.step, tc.percent, p.Percent)
		}
		for _, ps := range p.Steps {
			wantCompleted := ps.ID < tc.step
			wantActive := ps.ID == tc.step
			if ps.Completed != wantCompleted || ps.Active != wantActive {
				t.Fatalf("step %d at current %d: completed=%v active=%v",
					ps.ID, tc.step, ps.Completed, ps.Active)
			}
		}
	}
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func withService(s State) State {
	return Reduce(s, SetService{Service: ServiceOption{ID: "mens-cuts", Title: "CORTES DE CABALLERO"}})
}

func withBarber(s State) State {
	return Reduce(s, SetBarber{Barber: BarberOption{ID: "b1", FullName: "Carlos"}})
}

func withDateTime(s State) State {
	return Reduce(s, SetDateTime{DateTime: DateTime{Date: "2025-06-10", Time: "10:00:00"}})
}

func withStep(s State, step Step) State {
	return Reduce(s, GoToStep{Step: step})
}
