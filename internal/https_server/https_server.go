// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件和路由
package https_server

import (
	"peer_chat_server/internal/config"
	"peer_chat_server/internal/handler"
	"peer_chat_server/internal/infrastructure/logger"
	"peer_chat_server/internal/infrastructure/middleware"
	"peer_chat_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init 初始化 HTTP/HTTPS 服务器并返回 Gin 引擎实例
// handlers: 通过依赖注入传入的 Handler 聚合对象
// 配置顺序：引擎 -> 日志/恢复中间件 -> CORS -> 可选 TLS 重定向 -> 业务路由
func Init(handlers *handler.Handlers) *gin.Engine {
	// 空白引擎，不用 gin.Default()，中间件全部自己挂
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // 生产环境应指定具体域名
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS 重定向（由 Nginx 终结 SSL 时关闭）
	mainConfig := config.GetConfig().MainConfig
	if mainConfig.TlsRedirect {
		engine.Use(middleware.TlsHandler(mainConfig.Host, mainConfig.Port))
	}

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
