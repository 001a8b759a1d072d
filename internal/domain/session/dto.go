package session

// StatePayload is the data of every auth-state event on the stream.
type StatePayload struct {
	Loading  bool    `json:"loading"`
	UserID   string  `json:"user_id"`
	Email    string  `json:"email,omitempty"`
	Role     *string `json:"role"`
	FullName *string `json:"full_name"`
}

func NewStatePayload(userID string, st State) StatePayload {
	p := StatePayload{Loading: st.Loading, UserID: userID}
	if st.Session != nil {
		p.Email = st.Session.Email
		p.Role = st.Session.RoleString()
		if st.Session.Profile != nil {
			name := st.Session.Profile.FullName
			p.FullName = &name
		}
	}
	return p
}
