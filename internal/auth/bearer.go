package auth

import "strings"

// ExtractBearerToken parses an Authorization header value, accepting only
// the exact two-part "Bearer <token>" form. A missing prefix, extra
// segments or an empty token all yield "".
func ExtractBearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}
