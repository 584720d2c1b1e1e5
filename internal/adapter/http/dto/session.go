package dto

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type IdentityItem struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SessionItem struct {
	Identity *IdentityItem `json:"identity"`
	Loading  bool          `json:"loading"`
}
