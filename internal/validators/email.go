package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid verifica que el dominio del email exista de
// verdad (MX o A). El binding `email` de gin ya validó el formato;
// esto frena registros con dominios inventados.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
