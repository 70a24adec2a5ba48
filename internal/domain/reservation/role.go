package reservation

import "fmt"

// Role ordena los perfiles del sitio: un rol satisface a otro si
// está al menos tan arriba en la jerarquía.
type Role string

const (
	RoleCliente    Role = "cliente"
	RoleBarbero    Role = "barbero"
	RoleSuperAdmin Role = "super_admin"
)

var roleRank = map[Role]int{
	RoleCliente:    1,
	RoleBarbero:    2,
	RoleSuperAdmin: 3,
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Satisfies(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}
