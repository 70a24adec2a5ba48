package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrae el código de negocio, o "" si el error no es
// de negocio.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Códigos usados por el flujo de reserva. El conflicto de horario se
// distingue del resto para que el asistente pueda ofrecer volver al
// paso de fecha y hora.
const (
	CodeTimeConflict    = "time_conflict"
	CodeSlotUnavailable = "slot_unavailable"
	CodePaymentFailed   = "payment_failed"
	CodeInvalidState    = "invalid_state"
)
