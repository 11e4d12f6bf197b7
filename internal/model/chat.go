package model

type CreateChatRequest struct {
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	ParticipantIDs []string `json:"participant_ids"`
}

type CreateChatResponse struct {
	Chat Chat `json:"chat"`
}

type GetChatsRequest struct{}

type GetChatsResponse struct {
	Chats []Chat `json:"chats"`
}

type SendMessageRequest struct {
	ChatID    string `uri:"id" json:"chat_id"`
	Content   string `json:"content"`
	ReplyToID int64  `json:"reply_to_id"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type GetMessagesRequest struct {
	ChatID string `uri:"id" json:"chat_id"`
	Before int64  `form:"before" json:"before"`
	Limit  int    `form:"limit" json:"limit"`
}

type GetMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type MarkChatReadRequest struct {
	ChatID string `uri:"id" json:"chat_id"`
}

type MarkChatReadResponse struct{}
