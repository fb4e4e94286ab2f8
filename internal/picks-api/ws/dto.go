package ws

import "github.com/radieske/sports-picks-cms/pkg/contracts/events"

// ClientMsg é a mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Topic: entidade (pick, event, site...) ou "*" para tudo
type ClientMsg struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

// Update é o envelope enviado aos clientes
type Update struct {
	Type string                `json:"type"` // sempre "content_changed"
	Data events.ContentChanged `json:"data"`
}

const TopicAll = "*"
