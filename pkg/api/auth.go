package api

import "github.com/shopspring/decimal"

type Member struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	GroupID   string          `json:"group_id,omitempty"`
	Role      string          `json:"role"`
	FixedRent decimal.Decimal `json:"fixed_rent"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Member *Member `json:"member"`
	Token  string  `json:"token"`
}

type GetCurrentMemberRequest struct{}

type GetCurrentMemberResponse struct {
	Member *Member `json:"member"`
}
