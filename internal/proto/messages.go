// Package proto defines the CoinKeeper gRPC contract: request and response
// messages, the JSON wire codec, the service descriptor and the client stub.
package proto

// LoginRequest logs in by email. A nil Name leaves the stored name alone.
type LoginRequest struct {
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Coins int64  `json:"coins"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Coins int64  `json:"coins"`
}

// AddCoinsRequest carries a signed balance change.
type AddCoinsRequest struct {
	Amount int64 `json:"amount"`
}

type AddCoinsResponse struct {
	Coins int64 `json:"coins"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
