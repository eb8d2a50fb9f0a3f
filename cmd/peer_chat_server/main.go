package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"peer_chat_server/internal/config"
	dao "peer_chat_server/internal/dao/mysql"
	myredis "peer_chat_server/internal/dao/redis"
	"peer_chat_server/internal/gateway/websocket"
	"peer_chat_server/internal/handler"
	"peer_chat_server/internal/https_server"
	"peer_chat_server/internal/infrastructure/logger"
	"peer_chat_server/internal/service"
	"peer_chat_server/internal/service/delivery"
	"peer_chat_server/pkg/util/jwt"
	"peer_chat_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化雪花节点（消息 id 生成）
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 4. 初始化数据库和 Repository 层
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis 缓存（4 个异步 worker）
	cache := myredis.Init(4, 256)
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT（与身份服务共享密钥）
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)

	// 7. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}

	// 8. 按配置选择投递通道：单机进程内 channel 或多实例 kafka
	var broker delivery.Broker
	if conf.KafkaConfig.DeliveryMode == "kafka" {
		broker = delivery.NewKafkaBroker(uuid.NewString())
	} else {
		broker = delivery.NewChannelBroker()
	}
	go broker.Start()
	zap.L().Info("投递通道初始化成功", zap.String("mode", conf.KafkaConfig.DeliveryMode))

	// 9. 组装 Service、网关和 Handler 层
	services := service.NewServices(repos, cache, broker)
	gateway := websocket.NewGateway(broker, services)
	handlers := handler.NewHandlers(services, gateway)

	// 10. 初始化 HTTP 服务器并启动
	engine := https_server.Init(handlers)
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务器启动成功",
		zap.String("app", conf.MainConfig.AppName),
		zap.Int("port", conf.MainConfig.Port),
	)

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	broker.Close()
	zap.L().Info("服务器已关闭")
}
