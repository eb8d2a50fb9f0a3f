// Package websocket 实现 WebSocket 网关
// conn_manager.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)，按 token 鉴权
// 2. 连接建立即订阅投递通道并置为在线，断开时反向清理
// 3. 读协程：前端发来消息 -> 消息服务落库推送；写协程：订阅流 -> 前端
package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/service"
	"peer_chat_server/internal/service/delivery"
	"peer_chat_server/pkg/errorx"
	"peer_chat_server/pkg/util/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 检查连接的Origin头
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway WebSocket 网关
type Gateway struct {
	broker delivery.Broker
	svc    *service.Services
}

// NewGateway 构造函数
func NewGateway(broker delivery.Broker, svc *service.Services) *Gateway {
	return &Gateway{broker: broker, svc: svc}
}

// client 一条已鉴权的 WebSocket 连接
type client struct {
	conn   *websocket.Conn
	userId string
	sub    *delivery.Subscription
}

// errorFrame 推送给前端的错误帧
type errorFrame struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Serve 处理 WebSocket 接入
// 浏览器 WebSocket API 不支持自定义请求头，token 经 query 参数携带
func (g *Gateway) Serve(c *gin.Context) {
	token := c.Query("token")
	claims, err := jwt.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": errorx.CodeUnauthorized, "msg": "无效的token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.Error(err))
		return
	}

	// 先订阅再放行读写：返回即生效，此后落库的消息不会漏推
	sub, err := g.broker.Subscribe(claims.UserID)
	if err != nil {
		zap.L().Error("ws subscribe failed", zap.String("user_id", claims.UserID), zap.Error(err))
		_ = conn.Close()
		return
	}
	if err := g.svc.User.SetOnline(claims.UserID, true); err != nil {
		zap.L().Warn("置为在线失败", zap.String("user_id", claims.UserID), zap.Error(err))
	}

	cl := &client{conn: conn, userId: claims.UserID, sub: sub}
	go g.writeLoop(cl)
	go g.readLoop(cl)
	zap.L().Info("ws连接成功", zap.String("user_id", claims.UserID))
}

// readLoop 读取前端消息帧并交给消息服务
// 读取出错即视为断开，清理订阅和在线状态
func (g *Gateway) readLoop(cl *client) {
	defer g.disconnect(cl)
	for {
		_, frame, err := cl.conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Info("ws read closed", zap.String("user_id", cl.userId), zap.Error(err))
			return
		}
		var req request.SendMessageRequest
		if err := json.Unmarshal(frame, &req); err != nil {
			zap.L().Warn("ws消息帧解析失败", zap.String("user_id", cl.userId), zap.Error(err))
			g.writeError(cl, errorx.ErrInvalidParam)
			continue
		}
		if _, err := g.svc.Message.SendMessage(cl.userId, req); err != nil {
			g.writeError(cl, err)
		}
	}
}

// writeLoop 将订阅流写回前端
// 订阅通道被 Unsubscribe 关闭后循环自然退出
func (g *Gateway) writeLoop(cl *client) {
	for msg := range cl.sub.C { // 阻塞状态
		if err := cl.conn.WriteJSON(msg); err != nil {
			zap.L().Error("ws write failed", zap.String("user_id", cl.userId), zap.Error(err))
			return // 直接断开websocket
		}
	}
}

// writeError 向前端写一帧业务错误
func (g *Gateway) writeError(cl *client, err error) {
	frame := errorFrame{Code: errorx.GetCode(err), Msg: err.Error()}
	if werr := cl.conn.WriteJSON(frame); werr != nil {
		zap.L().Error("ws write error frame failed", zap.String("user_id", cl.userId), zap.Error(werr))
	}
}

// disconnect 断开清理：退订、离线、关连接
func (g *Gateway) disconnect(cl *client) {
	g.broker.Unsubscribe(cl.sub)
	if err := g.svc.User.SetOnline(cl.userId, false); err != nil {
		zap.L().Warn("置为离线失败", zap.String("user_id", cl.userId), zap.Error(err))
	}
	if err := cl.conn.Close(); err != nil {
		zap.L().Debug("ws close", zap.Error(err))
	}
}
