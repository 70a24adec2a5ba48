package wizard

// ======================================================
// Actions
//
// Cada acción produce exactamente un snapshot nuevo de State.
// Una acción desconocida es un no-op, nunca un panic.
// ======================================================

type Action interface {
	isAction()
}

type SetService struct{ Service ServiceOption }
type SetBarber struct{ Barber BarberOption }
type SetDateTime struct{ DateTime DateTime }
type SetCustomerInfo struct{ Info CustomerInfo }
type SetPaymentInfo struct{ Info PaymentInfo }
type SetProcessing struct{ On bool }
type SetError struct{ Field, Message string }
type ClearError struct{ Field string }
type SetTotalPrice struct{ Amount float64 }
type NextStep struct{}
type PrevStep struct{}
type GoToStep struct{ Step Step }
type Reset struct{}

func (SetService) isAction()      {}
func (SetBarber) isAction()       {}
func (SetDateTime) isAction()     {}
func (SetCustomerInfo) isAction() {}
func (SetPaymentInfo) isAction()  {}
func (SetProcessing) isAction()   {}
func (SetError) isAction()        {}
func (ClearError) isAction()      {}
func (SetTotalPrice) isAction()   {}
func (NextStep) isAction()        {}
func (PrevStep) isAction()        {}
func (GoToStep) isAction()        {}
func (Reset) isAction()           {}
