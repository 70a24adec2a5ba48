package wizard

import "strings"

// ======================================================
// Step guards & progress
// ======================================================

type StepConfig struct {
	ID          Step   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var Steps = []StepConfig{
	{StepService, "Servicio", "Selecciona el servicio deseado"},
	{StepBarber, "Barbero", "Elige tu barbero preferido"},
	{StepDateTime, "Fecha y Hora", "Selecciona fecha y horario disponible"},
	{StepSummary, "Confirmación", "Revisa y confirma tu reserva"},
	{StepPayment, "Pago", "Completa el proceso de pago"},
}

// Continue valida la precondición del paso actual y avanza. Si la
// selección requerida falta, deja el paso como está y marca el
// error del campo correspondiente.
func Continue(s State) (State, bool) {
	switch s.CurrentStep {
	case StepService:
		if s.SelectedService == nil {
			return Reduce(s, SetError{FieldService, "Por favor selecciona un servicio"}), false
		}
	case StepBarber:
		if s.SelectedBarber == nil {
			return Reduce(s, SetError{FieldBarber, "Por favor selecciona un barbero"}), false
		}
	case StepDateTime:
		if s.SelectedDateTime == nil {
			return Reduce(s, SetError{FieldDateTime, "Por favor selecciona fecha y hora"}), false
		}
	case StepSummary:
		// Guarda defensiva: el resumen exige las tres selecciones
		// aunque la navegación por pasos ya las haya pedido.
		switch {
		case s.SelectedService == nil:
			return Reduce(s, SetError{FieldService, "Por favor selecciona un servicio"}), false
		case s.SelectedBarber == nil:
			return Reduce(s, SetError{FieldBarber, "Por favor selecciona un barbero"}), false
		case s.SelectedDateTime == nil:
			return Reduce(s, SetError{FieldDateTime, "Por favor selecciona fecha y hora"}), false
		}
		if strings.TrimSpace(s.CustomerInfo.Name) == "" || strings.TrimSpace(s.CustomerInfo.Email) == "" {
			return Reduce(s, SetError{FieldCustomerInfo, "Nombre y email son obligatorios"}), false
		}
	case StepPayment:
		// Paso terminal: no hay "continuar", solo el submit de pago.
		return s, false
	}

	return Reduce(s, NextStep{}), true
}

// ReadyToSubmit verifica las tres selecciones antes de tocar la red.
func ReadyToSubmit(s State) bool {
	return s.SelectedService != nil &&
		s.SelectedBarber != nil &&
		s.SelectedDateTime != nil
}

type ProgressStep struct {
	StepConfig
	Completed bool `json:"completed"`
	Active    bool `json:"active"`
}

type Progress struct {
	Percent float64        `json:"percent"`
	Steps   []ProgressStep `json:"steps"`
}

// ProgressFor es función pura del paso actual.
func ProgressFor(current Step) Progress {
	p := Progress{
		Percent: float64(current-1) / float64(TotalSteps-1) * 100,
		Steps:   make([]ProgressStep, 0, len(Steps)),
	}
	for _, sc := range Steps {
		p.Steps = append(p.Steps, ProgressStep{
			StepConfig: sc,
			Completed:  sc.ID < current,
			Active:     sc.ID == current,
		})
	}
	return p
}
