package storeapi

import "time"

// PropertyRecord is a property row as the store exposes it.
type PropertyRecord struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Address       string     `json:"address"`
	TenantName    string     `json:"tenant_name"`
	RentAmount    string     `json:"rent_amount"`
	DueDay        int32      `json:"due_day"`
	Paid          bool       `json:"paid"`
	LastPaymentAt *time.Time `json:"last_payment_at,omitempty"`
	ContractStart string     `json:"contract_start"`
	ContractEnd   string     `json:"contract_end"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PropertyPatch carries only the columns to change; nil means untouched.
type PropertyPatch struct {
	Address       *string    `json:"address,omitempty"`
	TenantName    *string    `json:"tenant_name,omitempty"`
	RentAmount    *string    `json:"rent_amount,omitempty"`
	DueDay        *int32     `json:"due_day,omitempty"`
	ContractStart *string    `json:"contract_start,omitempty"`
	ContractEnd   *string    `json:"contract_end,omitempty"`
	Paid          *bool      `json:"paid,omitempty"`
	LastPaymentAt *time.Time `json:"last_payment_at,omitempty"`
}

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterUserResponse struct {
	UserID string `json:"user_id"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username          string `json:"username"`
	VerifierCandidate []byte `json:"verifier_candidate"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type CurrentUserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type ListPropertiesRequest struct {
	UserID string `json:"user_id"`
}

type ListPropertiesResponse struct {
	Properties []*PropertyRecord `json:"properties"`
}

type InsertPropertyRequest struct {
	UserID   string          `json:"user_id"`
	Property *PropertyRecord `json:"property"`
}

type InsertPropertyResponse struct {
	Property *PropertyRecord `json:"property"`
}

type UpdatePropertyRequest struct {
	ID    string         `json:"id"`
	Patch *PropertyPatch `json:"patch"`
}

type UpdatePropertiesRequest struct {
	IDs   []string       `json:"ids"`
	Patch *PropertyPatch `json:"patch"`
}

type UpdatePropertiesResponse struct {
	Updated int64 `json:"updated"`
}

type ResetPaymentsRequest struct {
	UserID string `json:"user_id"`
}

type DeletePropertyRequest struct {
	ID string `json:"id"`
}

type ReportUploadURLRequest struct {
	Name string `json:"name"`
}

type ReportURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ReportDownloadURLRequest struct {
	Key string `json:"key"`
}
