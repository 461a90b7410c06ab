package dto

type WebhookRequest struct {
	User string `json:"user"`
	Text string `json:"text"`
}

type WebhookResponse struct {
	Reply string `json:"reply"`
}
