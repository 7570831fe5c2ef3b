package types

const (
	// DefaultCodeField is the request body field holding the peer code
	DefaultCodeField = "peerCode"

	MessageRegistered = "Device registered"
	MessageWelcome    = "Welcome to BurrowSpace!"
	DetailNotFound    = "Device not found"
	DetailBadRequest  = "invalid request body"
	DetailRegisterErr = "failed to register peer"
	DetailLookupErr   = "failed to lookup peer"
)

type RegisterResponse struct {
	Message string `json:"message" example:"Device registered"`
	IP      string `json:"ip" example:"203.0.113.7"`
}

type LookupResponse struct {
	IP string `json:"ip" example:"203.0.113.7"`
}

type ErrorResponse struct {
	Detail string `json:"detail" example:"Device not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Welcome to BurrowSpace!"`
}
