package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/trustvote/internal/common"
)

// HandleSigil is the single leading character of every normalized handle.
const HandleSigil = "@"

// NormalizeHandle trims and lowercases raw and makes sure the result starts
// with exactly one sigil. Empty input (or input made only of sigils) is a
// validation error.
func NormalizeHandle(raw string) (string, error) {
	h := strings.ToLower(strings.TrimSpace(raw))
	h = strings.TrimLeft(h, HandleSigil)
	h = strings.TrimSpace(h)
	if h == "" {
		return "", fmt.Errorf("%w: empty handle", common.ErrorValidation)
	}
	if strings.ContainsAny(h, " \t\r\n") {
		return "", fmt.Errorf("%w: handle %q contains whitespace", common.ErrorValidation, raw)
	}
	return HandleSigil + h, nil
}

// BareHandle strips the leading sigil, e.g. "@alice" -> "alice".
func BareHandle(handle string) string {
	return strings.TrimPrefix(handle, HandleSigil)
}

// SameHandle compares two handles case-insensitively.
func SameHandle(a, b string) bool {
	return strings.EqualFold(a, b)
}
