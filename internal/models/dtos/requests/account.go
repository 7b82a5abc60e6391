package requests

type SignUpRequest struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	FullName         string  `json:"full_name"`
	Phone            *string `json:"phone,omitempty"`
	Location         *string `json:"location,omitempty"`
	ReasonForJoining string  `json:"reason_for_joining"`
	FaithJourney     string  `json:"faith_journey"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the partial profile fields a member may edit
// themselves. Role and status are admin-only and deliberately absent.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
