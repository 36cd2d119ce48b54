package models

// One request/response pair per account operation.

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RegisterResponse wraps the newly created account.
type RegisterResponse struct {
	Account Account `json:"account"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// GetResponse wraps an account lookup result.
type GetResponse struct {
	Account Account `json:"account"`
}

// UpdateProfileRequest carries the optional profile fields. Blank or absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	Username   string `json:"-"`
	Name       string `json:"name"`
	ProfilePic string `json:"profile_pic"`
}

// UpdateProfileResponse wraps the updated account.
type UpdateProfileResponse struct {
	Account Account `json:"account"`
}

// ChangePasswordRequest carries the old and new passwords.
type ChangePasswordRequest struct {
	Username    string `json:"-"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordResponse wraps the account after a password change.
type ChangePasswordResponse struct {
	Account Account `json:"account"`
}

// DeleteRequest names the account to delete.
type DeleteRequest struct {
	Username string `json:"-"`
}
