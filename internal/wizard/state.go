package wizard

// ======================================================
// Reservation wizard state
//
// El estado vive en memoria durante un intento de reserva y
// solo muta a través del reducer (reducer.go). Es efímero: no
// sobrevive a un reinicio ni se comparte entre sesiones.
// ======================================================

type Step int

const (
	StepService  Step = 1
	StepBarber   Step = 2
	StepDateTime Step = 3
	StepSummary  Step = 4
	StepPayment  Step = 5

	TotalSteps = 5
)

type PriceVariant struct {
	Variant string  `json:"variant"`
	Price   float64 `json:"price"`
}

type ServiceOption struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	DurationMin int            `json:"duration_min"`
	Price       float64        `json:"price"`
	Variants    []PriceVariant `json:"variants,omitempty"`
}

type BarberOption struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	ExperienceYears int    `json:"experience_years,omitempty"`
	WorkShift       string `json:"work_shift,omitempty"`
	Status          string `json:"status,omitempty"`
}

type DateTime struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM:SS
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type CardDetails struct {
	Number     string `json:"card_number"`
	Expiry     string `json:"expiry_date"` // MM/YY
	CVV        string `json:"cvv"`
	HolderName string `json:"cardholder_name"`
}

type PaymentInfo struct {
	Method PaymentMethod `json:"method"`
	Card   *CardDetails  `json:"card_details,omitempty"`
}

type State struct {
	CurrentStep      Step              `json:"current_step"`
	SelectedService  *ServiceOption    `json:"selected_service"`
	SelectedBarber   *BarberOption     `json:"selected_barber"`
	SelectedDateTime *DateTime         `json:"selected_date_time"`
	CustomerInfo     CustomerInfo      `json:"customer_info"`
	PaymentInfo      *PaymentInfo      `json:"payment_info"`
	IsProcessing     bool              `json:"is_processing"`
	Errors           map[string]string `json:"errors"`
	TotalPrice       float64           `json:"total_price"`
}

func Initial() State {
	return State{
		CurrentStep: StepService,
		Errors:      map[string]string{},
	}
}

// Campos de error por paso.
const (
	FieldService      = "service"
	FieldBarber       = "barber"
	FieldDateTime     = "dateTime"
	FieldCustomerInfo = "customerInfo"
	FieldPayment      = "payment"
	FieldSubmit       = "submit"
)
