package auth

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"learnpath-web/internal/apperr"
)

// ParseFragment decodes the token fragment of an implicit-flow redirect.
// The leading '#' is optional.
func ParseFragment(raw string, now time.Time) (*oauth2.Token, error) {
	const op = "auth.ParseFragment"

	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if raw == "" {
		return nil, apperr.E(apperr.KindNoCallbackData, op, "callback carried no fragment", nil)
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return nil, apperr.E(apperr.KindNoCallbackData, op, "fragment is not key-value encoded", err)
	}
	if e := vals.Get("error"); e != "" {
		msg := vals.Get("error_description")
		if msg == "" {
			msg = e
		}
		return nil, apperr.E(apperr.KindMissingToken, op, "provider returned an error: "+msg, nil)
	}

	access := vals.Get("access_token")
	refresh := vals.Get("refresh_token")
	switch {
	case access == "":
		return nil, apperr.E(apperr.KindMissingToken, op, "access_token missing", nil)
	case refresh == "":
		return nil, apperr.E(apperr.KindMissingToken, op, "refresh_token missing", nil)
	}

	tok := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    vals.Get("token_type"),
	}
	if at, err := strconv.ParseInt(vals.Get("expires_at"), 10, 64); err == nil && at > 0 {
		tok.Expiry = time.Unix(at, 0)
	} else if in, err := strconv.ParseInt(vals.Get("expires_in"), 10, 64); err == nil && in > 0 {
		tok.Expiry = now.Add(time.Duration(in) * time.Second)
	}
	return tok, nil
}
