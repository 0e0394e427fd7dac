package response_models

type AcceptanceDataResponse struct {
	AcceptanceToken string `json:"acceptance_token"`
	Permalink       string `json:"permalink"`
	Type            string `json:"type"`
}

type WebhookAck struct {
	Status string `json:"status"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
