package zapi

type SendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendTextResponse: o provedor sinaliza falha pelo campo "error" no corpo,
// nem sempre pelo status HTTP.
type SendTextResponse struct {
	ZaapID    string `json:"zaapId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
}
