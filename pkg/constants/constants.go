package constants

const (
	CHANNEL_SIZE       = 100 // 通道大小（广播、订阅缓冲）
	SUBSCRIBER_BUFFER  = 64  // 单个订阅的推送缓冲大小
	REDIS_TIMEOUT      = 1   // redis 缓存过期时间（分钟）
	MAX_CONTENT_LENGTH = 65535
)
