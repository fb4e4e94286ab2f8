package topics

const (
	// Conteúdo (picks, eventos, sites, ...)
	ContentChanges = "content_changes"

	// DLQ
	ContentChangesDLQ = "content_changes_dlq"

	// Canal Redis Pub/Sub consumido pelo feed WebSocket
	ContentBroadcast = "content_updates_broadcast"
)
