package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the acknowledgment envelope for mutations with no body.
type messageResponse struct {
	Message string `json:"message"`
}

// balanceResponse carries an updated ledger balance after a grant or transfer.
type balanceResponse struct {
	GameID  string `json:"game_id"`
	Balance int    `json:"balance"`
}
