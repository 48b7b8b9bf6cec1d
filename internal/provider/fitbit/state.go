package fitbit

import (
	"time"

	"github.com/saadjs/fitlog/internal/model"
)

// ExpirySkew is how long before expiresAt an access token is treated as stale.
const ExpirySkew = 60 * time.Second

// LinkState is the lifecycle of the single stored token record.
//
//	Unlinked --exchange--> Linked --near expiry--> Refreshing --ok--> Linked
//	                                               Refreshing --fail--> Unlinked
type LinkState int

const (
	Unlinked LinkState = iota
	Linked
	Refreshing
)

func (s LinkState) String() string {
	switch s {
	case Linked:
		return "linked"
	case Refreshing:
		return "refreshing"
	default:
		return "unlinked"
	}
}

func (s LinkState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StateOf derives the link state from the stored tokens at now.
func StateOf(tokens *model.FitbitTokens, now time.Time) LinkState {
	if tokens == nil || (tokens.AccessToken == "" && tokens.RefreshToken == "") {
		return Unlinked
	}
	if tokens.AccessToken == "" || now.After(tokens.ExpiresAtTime().Add(-ExpirySkew)) {
		if tokens.RefreshToken == "" {
			return Unlinked
		}
		return Refreshing
	}
	return Linked
}
