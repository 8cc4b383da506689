package constants

// Context keys
const (
	ContextKeyTask      = "task"
	ContextKeyRequestID = "request_id"
)

// Session
const (
	SessionName           = "task_board_session"
	SessionKeyStatusView  = "view_status"
	SessionKeySortView    = "view_sort"
	SessionMaxAgeSeconds  = 86400 * 30
	RedisSessionPoolSize  = 10
	RedisSessionKeyPrefix = "session_"
)

// Task suggestions
const (
	MaxAIGeneratedTasks = 20
	MaxAIInputLength    = 8000
)
