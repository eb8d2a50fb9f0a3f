package redis

import (
	"context"
	"fmt"
	"time"

	"peer_chat_server/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Init 建立 Redis 连接并返回缓存服务实例
func Init(workerNum, taskChanSize int) *RedisCache {
	conf := config.GetConfig()

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.RedisConfig.Host, conf.RedisConfig.Port),
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Fatal("redis ping failed", zap.Error(err))
	}

	return NewRedisCache(client, workerNum, taskChanSize)
}
