package guest

import "time"

// Account is an authenticated planner identity. Two accounts become linked
// when a partner invitation is accepted; from then on both resolve guest
// data under the same shared event id.
type Account struct {
	ID                 string    `json:"id"`
	ConnectedAccountID string    `json:"connectedAccountId,omitempty"`
	SharedEventID      string    `json:"sharedEventId,omitempty"`
	IsMainEventOwner   bool      `json:"isMainEventOwner"`
	EventDate          time.Time `json:"eventDate,omitzero"`
	Budget             float64   `json:"budget,omitempty"`
	GuestCountEstimate int       `json:"guestCountEstimate,omitempty"`
	Venue              string    `json:"venue,omitempty"`
}

// EffectiveIdentity is the key under which guest data is fetched, cached
// and imported: the shared event id once linking has occurred, the
// account's own id before that.
func (a *Account) EffectiveIdentity() string {
	if a.SharedEventID != "" {
		return a.SharedEventID
	}
	return a.ID
}

// Linked reports whether the account has a connected partner.
func (a *Account) Linked() bool {
	return a.ConnectedAccountID != ""
}
