package pipeline

// Payload carries one inbound group message through the filter chain.
// The caller delivers each physical chat event exactly once; filters do not
// deduplicate replays themselves.
type Payload struct {
	ChatID     int64
	SenderID   int64
	SenderName string
	MessageID  string
	Text       string
}
