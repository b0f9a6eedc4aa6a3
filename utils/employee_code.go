package utils

import (
	"regexp"
	"strings"
)

var employeeCodeRe = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)

// NormalizeEmployeeCode trims surrounding whitespace and uppercases the code.
// The form does the same on the client, so codes compare equal either way.
func NormalizeEmployeeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidEmployeeCode reports whether a normalized code is 3-20 alphanumerics.
func ValidEmployeeCode(s string) bool {
	return employeeCodeRe.MatchString(s)
}
