package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketQuery      = "query"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketAnswer     = "answer"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebSocketProcessingPayload reports pipeline progress to the client
// while a query is running.
type WebSocketProcessingPayload struct {
	Stage   string `json:"stage"`
	Message string `json:"message,omitempty"`
}

type WebSocketErrorPayload struct {
	Error string `json:"error"`
}
