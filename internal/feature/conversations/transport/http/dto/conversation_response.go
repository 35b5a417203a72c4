package dto

// ConversationItem is the public view of a conversation.
// The password hash is deliberately absent: it must never reach a client.
type ConversationItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedBy uint   `json:"created_by"`
}

// ConversationPage is the response for entering a conversation.
type ConversationPage struct {
	Conversation ConversationItem `json:"conversation"`
	Topic        string           `json:"topic"`
}
