package reservation

import "fmt"

// IconKind identifica el icono de un servicio del catálogo. Las
// claves desconocidas se rechazan al parsear en vez de degradar en
// silencio a un icono por defecto.
type IconKind int

const (
	IconUnknown IconKind = iota
	IconScissors
	IconRazor
	IconBeard
	IconSpa
	IconKid
	IconColor
)

var iconKeys = map[string]IconKind{
	"scissors": IconScissors,
	"razor":    IconRazor,
	"beard":    IconBeard,
	"spa":      IconSpa,
	"kid":      IconKid,
	"color":    IconColor,
}

var iconNames = map[IconKind]string{
	IconScissors: "scissors",
	IconRazor:    "razor",
	IconBeard:    "beard",
	IconSpa:      "spa",
	IconKid:      "kid",
	IconColor:    "color",
}

func ParseIconKind(key string) (IconKind, error) {
	if k, ok := iconKeys[key]; ok {
		return k, nil
	}
	return IconUnknown, fmt.Errorf("unknown icon key %q", key)
}

func (k IconKind) String() string {
	if name, ok := iconNames[k]; ok {
		return name
	}
	return "unknown"
}
