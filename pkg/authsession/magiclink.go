package authsession

import "net/url"

// TokenQueryParam is the query parameter the hosted login UI appends when
// handing a session back to the application ("magic link" handoff).
const TokenQueryParam = "auth_token"

// ExtractTokenFromURL returns the handoff token embedded in rawURL's query
// string and the URL with the parameter stripped, ready to replace the
// visible address. When no token is present (or the URL does not parse)
// the token is empty and the URL is returned unchanged.
func ExtractTokenFromURL(rawURL string) (token, cleaned string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}

	query := u.Query()
	token = query.Get(TokenQueryParam)
	if token == "" {
		return "", rawURL
	}

	query.Del(TokenQueryParam)
	u.RawQuery = query.Encode()
	return token, u.String()
}
