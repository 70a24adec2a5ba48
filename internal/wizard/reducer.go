package wizard

// Reduce aplica una acción sobre el estado y devuelve el estado
// siguiente. Es pura: no toca el receptor, no hace IO y ante la
// misma entrada produce siempre la misma salida. Los efectos
// (fetch de barberos, slots, cobro) ocurren fuera y reingresan
// como acciones.
func Reduce(s State, a Action) State {
	switch act := a.(type) {

	case SetService:
		svc := act.Service
		s.SelectedService = &svc
		s.Errors = without(s.Errors, FieldService)

	case SetBarber:
		b := act.Barber
		s.SelectedBarber = &b
		s.Errors = without(s.Errors, FieldBarber)

	case SetDateTime:
		dt := act.DateTime
		s.SelectedDateTime = &dt
		s.Errors = without(s.Errors, FieldDateTime)

	case SetCustomerInfo:
		s.CustomerInfo = act.Info
		s.Errors = without(s.Errors, FieldCustomerInfo)

	case SetPaymentInfo:
		info := act.Info
		s.PaymentInfo = &info
		s.Errors = without(s.Errors, FieldPayment)

	case SetProcessing:
		s.IsProcessing = act.On

	case SetError:
		s.Errors = with(s.Errors, act.Field, act.Message)

	case ClearError:
		s.Errors = without(s.Errors, act.Field)

	case SetTotalPrice:
		s.TotalPrice = act.Amount

	case NextStep:
		if s.CurrentStep < TotalSteps {
			s.CurrentStep++
		}

	case PrevStep:
		if s.CurrentStep > StepService {
			s.CurrentStep--
		}

	case GoToStep:
		// Salto sin guardas: solo lo usa el prellenado por deep link.
		if act.Step >= StepService && act.Step <= StepPayment {
			s.CurrentStep = act.Step
		}

	case Reset:
		return Initial()
	}

	return s
}

func with(errs map[string]string, field, message string) map[string]string {
	next := make(map[string]string, len(errs)+1)
	for k, v := range errs {
		next[k] = v
	}
	next[field] = message
	return next
}

func without(errs map[string]string, field string) map[string]string {
	next := make(map[string]string, len(errs))
	for k, v := range errs {
		if k != field {
			next[k] = v
		}
	}
	return next
}
