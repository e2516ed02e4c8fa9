package dto

// IntakeRequest is the request body for recording an inventory operation.
type IntakeRequest struct {
	Code         string `json:"code" binding:"required,max=100"`
	Operation    string `json:"operation" binding:"required"`
	RackLocation string `json:"rack_location" binding:"required,max=100"`
}

// IntakeResponse is the response body for a recorded operation.
type IntakeResponse struct {
	TransactionID string `json:"transaction_id"`
	Synced        bool   `json:"synced"`
	Message       string `json:"message"`
}

// SyncResponse is the response body for a manually triggered sync pass.
type SyncResponse struct {
	Processed  int `json:"processed"`
	Synced     int `json:"synced"`
	Remaining  int `json:"remaining"`
	Deliveries int `json:"deliveries"`
	Failures   int `json:"failures"`
}

// TransactionResponse is the response body for a listed transaction.
type TransactionResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Operation    string `json:"operation"`
	RackLocation string `json:"rack_location"`
	Timestamp    string `json:"timestamp"`
	DeviceID     string `json:"device_id"`
	Synced       bool   `json:"synced"`
}

// LoginRequest is the request body for the settings login.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ChangePasswordRequest is the request body for changing the settings password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4,max=128"`
}

// WebhookCreateRequest is the request body for registering an endpoint.
type WebhookCreateRequest struct {
	URL             string `json:"url" binding:"required,url,max=2048"`
	StockInEnabled  bool   `json:"stock_in_enabled"`
	StockOutEnabled bool   `json:"stock_out_enabled"`
}

// WebhookResponse is the response body for a registered endpoint.
type WebhookResponse struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	StockInEnabled  bool   `json:"stock_in_enabled"`
	StockOutEnabled bool   `json:"stock_out_enabled"`
	CreatedAt       string `json:"created_at"`
}

// ProbeRequest is the request body for an ad-hoc reachability probe.
type ProbeRequest struct {
	URL string `json:"url" binding:"required,url,max=2048"`
}

// ProbeResponse is the response body for a reachability check.
type ProbeResponse struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
}
