// Package mailx contains address helpers for the DuckMail client:
// building the full address from an identifier and producing the
// display-safe masked form of an email.
package mailx

import "strings"

// FullAddress appends the service domain to an identifier
// ("alice1", "duck.com" -> "alice1@duck.com"). The identifier is stored
// without the domain; the suffix exists only for display and requests.
func FullAddress(identifier, domain string) string {
	return identifier + "@" + domain
}

// MaskEmail returns a display-safe rendering of an email address.
// The first and last rune of the local part are kept and the middle is
// replaced with "***"; the domain is kept as is. Local parts shorter
// than two runes collapse to "*". The transform is deterministic and
// one-way; it is used only for the account remark, never for routing.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return maskLocal(email)
	}
	return maskLocal(email[:at]) + email[at:]
}

func maskLocal(local string) string {
	runes := []rune(local)
	if len(runes) < 2 {
		return "*"
	}
	return string(runes[0]) + "***" + string(runes[len(runes)-1])
}
