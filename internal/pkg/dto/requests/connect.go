package requests

// CreateConnectAccount is the payload accepted by POST /connect/accounts.
type CreateConnectAccount struct {
	StudioID      string `json:"studio_id" validate:"required"`
	BusinessName  string `json:"business_name" validate:"required"`
	BusinessEmail string `json:"business_email" validate:"required,email"`
	Country       string `json:"country" validate:"omitempty,iso3166_1_alpha2"`
}
