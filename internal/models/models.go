package models

// Shapes exchanged with the backend API. The backend owns these records; the
// web tier only caches and displays them.

// UserProfile is the authenticated user's profile as returned by the backend.
type UserProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	Phone         string `json:"phone,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	LastLogin     string `json:"lastLogin,omitempty"`
}

// ProfileUpdate carries the fields a user may change about themselves.
// Nil pointers mean "leave unchanged" and are omitted from the request body.
type ProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Tariff is a priced subscription plan.
type Tariff struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Months   int     `json:"months"`
	Discount float64 `json:"discount"`
	Price    float64 `json:"price"`
}

// Subscription is the user's current subscription snapshot shown in the cabinet.
type Subscription struct {
	ID        string `json:"id"`
	TariffID  string `json:"tariffId"`
	Status    string `json:"status"`
	StartedAt string `json:"startedAt,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// Counterparty is a business contact managed in the admin dashboard.
type Counterparty struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	INN   string `json:"inn,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
