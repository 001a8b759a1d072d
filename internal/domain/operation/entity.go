package operation

import "time"

// Actions written to the operation log.
const (
	ActionUpdateProfile = "update_profile"
	ActionUpdateAvatar  = "update_avatar"
	ActionCheckIn       = "check_in"
	ActionCheckOut      = "check_out"
	ActionSignUp        = "sign_up"
)

type Operation struct {
	ID           string
	ActorUserID  *string
	TargetUserID *string
	Action       string
	Metadata     map[string]interface{}
	CreatedAt    time.Time
}
