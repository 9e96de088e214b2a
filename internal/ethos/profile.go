package ethos

// Profile is an Ethos user as returned by the v2 user endpoints.
// Optional fields are pointers so an explicit null survives re-encoding.
type Profile struct {
	ID          int64   `json:"id"`
	ProfileID   *int64  `json:"profileId"`
	DisplayName string  `json:"displayName"`
	Username    *string `json:"username"`
	AvatarURL   *string `json:"avatarUrl"`
	Description *string `json:"description"`
	// Score is whole-numbered on the wire. A fractional value fails decoding
	// with ErrMalformedResponse rather than being truncated.
	Score       int     `json:"score"`
	Status      string  `json:"status"`
	Links       *Links  `json:"links,omitempty"`
}

// Links are the web pages Ethos publishes for a user.
type Links struct {
	Profile        *string `json:"profile"`
	ScoreBreakdown *string `json:"scoreBreakdown"`
}

// HasProfile reports whether the user has an Ethos profile ID.
func (p *Profile) HasProfile() bool {
	return p != nil && p.ProfileID != nil && *p.ProfileID != 0
}

// ProfileURL returns the public profile link, or "" when unknown.
func (p *Profile) ProfileURL() string {
	if p == nil || p.Links == nil {
		return ""
	}
	return Value(p.Links.Profile)
}

// Value dereferences an optional string field, treating nil as "".
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
