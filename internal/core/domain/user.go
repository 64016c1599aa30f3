package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Privacy values controlling who may see a user's full profile and ranks.
const (
	PrivacyPublic  = "public"
	PrivacyFriends = "friends"
)

// FriendStatus describes the social relation between a viewer and a profile owner.
type FriendStatus string

const (
	FriendStatusNone            FriendStatus = "none"
	FriendStatusFriends         FriendStatus = "friends"
	FriendStatusRequestSent     FriendStatus = "request_sent"
	FriendStatusRequestReceived FriendStatus = "request_received"
)

// DefaultAvatarURL is assigned to new accounts until the user uploads one.
const DefaultAvatarURL = "https://placehold.co/150x150/EFEFEF/333?text=Avatar"

// DisplayNameCooldown is the rolling window during which a display-name
// change is locked after the previous one.
const DisplayNameCooldown = 30 * 24 * time.Hour

// User is the aggregate holding identity, profile, the play-turns ledger,
// and the social edges (friends plus pending requests in both directions).
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	IsPhoneVerified bool      `json:"is_phone_verified"`
	Role            string    `json:"role"`
	IsLocked        bool      `json:"is_locked"`
	Privacy         string    `json:"privacy"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	AvatarURL       string    `json:"avatar_url"`
	LastInfoChange  time.Time `json:"last_info_change,omitempty"`

	// PlayTurns maps game ID to the user's turn balance. A missing key reads as 0.
	PlayTurns map[string]int `json:"play_turns,omitempty"`

	// Social edges. The three sets are disjoint for any given peer: a peer
	// is a friend, a pending sent request, a pending received request, or
	// unrelated — never more than one at once.
	Friends          []string `json:"friends,omitempty"`
	RequestsSent     []string `json:"requests_sent,omitempty"`
	RequestsReceived []string `json:"requests_received,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Balance returns the user's turn balance for a game; absent entries read as 0.
func (u *User) Balance(gameID string) int {
	return u.PlayTurns[gameID]
}

// AddTurns adjusts the balance for gameID by delta, creating the entry when absent.
func (u *User) AddTurns(gameID string, delta int) {
	if u.PlayTurns == nil {
		u.PlayTurns = make(map[string]int)
	}
	u.PlayTurns[gameID] += delta
}

// IsFriend reports whether id is in the user's friends set.
func (u *User) IsFriend(id string) bool { return containsID(u.Friends, id) }

// HasSentRequestTo reports whether the user has a pending request to id.
func (u *User) HasSentRequestTo(id string) bool { return containsID(u.RequestsSent, id) }

// HasRequestFrom reports whether the user holds a pending request from id.
func (u *User) HasRequestFrom(id string) bool { return containsID(u.RequestsReceived, id) }

// ViewableBy reports whether viewerID may see the user's full profile and
// ranks: public profiles are visible to everyone, friends-only profiles to
// the owner and their friends.
func (u *User) ViewableBy(viewerID string) bool {
	return u.Privacy == PrivacyPublic || viewerID == u.ID || u.IsFriend(viewerID)
}

// FriendStatusFor returns the relation viewerID holds toward this user,
// expressed from the viewer's perspective.
func (u *User) FriendStatusFor(viewerID string) FriendStatus {
	switch {
	case u.IsFriend(viewerID):
		return FriendStatusFriends
	case u.HasRequestFrom(viewerID):
		// the viewer's request is pending on our side
		return FriendStatusRequestSent
	case u.HasSentRequestTo(viewerID):
		return FriendStatusRequestReceived
	default:
		return FriendStatusNone
	}
}

// CanChangeDisplayName reports whether the cooldown since the last
// display-name change has elapsed as of now.
func (u *User) CanChangeDisplayName(now time.Time) bool {
	return u.LastInfoChange.IsZero() || now.Sub(u.LastInfoChange) >= DisplayNameCooldown
}

// AddFriend inserts id into the friends set, reporting whether it was added.
func (u *User) AddFriend(id string) bool {
	var added bool
	u.Friends, added = addToSet(u.Friends, id)
	return added
}

// RemoveFriend removes id from the friends set, reporting whether it was present.
func (u *User) RemoveFriend(id string) bool {
	var removed bool
	u.Friends, removed = removeFromSet(u.Friends, id)
	return removed
}

// AddSentRequest records a pending request to id.
func (u *User) AddSentRequest(id string) bool {
	var added bool
	u.RequestsSent, added = addToSet(u.RequestsSent, id)
	return added
}

// RemoveSentRequest clears a pending request to id, reporting whether it existed.
func (u *User) RemoveSentRequest(id string) bool {
	var removed bool
	u.RequestsSent, removed = removeFromSet(u.RequestsSent, id)
	return removed
}

// AddReceivedRequest records a pending request from id.
func (u *User) AddReceivedRequest(id string) bool {
	var added bool
	u.RequestsReceived, added = addToSet(u.RequestsReceived, id)
	return added
}

// RemoveReceivedRequest clears a pending request from id, reporting whether it existed.
func (u *User) RemoveReceivedRequest(id string) bool {
	var removed bool
	u.RequestsReceived, removed = removeFromSet(u.RequestsReceived, id)
	return removed
}

// addToSet appends id when absent, reporting whether the set changed.
func addToSet(set []string, id string) ([]string, bool) {
	if containsID(set, id) {
		return set, false
	}
	return append(set, id), true
}

// removeFromSet removes id when present, reporting whether it was there.
func removeFromSet(set []string, id string) ([]string, bool) {
	for i, v := range set {
		if v == id {
			return append(set[:i], set[i+1:]...), true
		}
	}
	return set, false
}

func containsID(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
