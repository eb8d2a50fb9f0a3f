package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/internal/gateway/websocket"
	"peer_chat_server/internal/handler"
	"peer_chat_server/internal/https_server"
	"peer_chat_server/internal/service"
	"peer_chat_server/internal/service/delivery"
	"peer_chat_server/pkg/errorx"
	"peer_chat_server/pkg/util/jwt"
)

type stubUserService struct{}

func (stubUserService) GetUserInfo(userId string) (*respond.UserInfoRespond, error) {
	return &respond.UserInfoRespond{UserId: userId, Name: "Alice", Email: "alice@example.com"}, nil
}
func (stubUserService) SetOnline(userId string, online bool) error { return nil }

type stubContactService struct{}

func (stubContactService) IsContact(ownerId, contactId string) (bool, error) { return false, nil }
func (stubContactService) AddContact(ownerId string, req request.AddContactRequest) (*respond.ContactRespond, error) {
	if req.Email == "nobody@example.com" {
		return nil, errorx.New(errorx.CodeNotFound, "该邮箱未注册")
	}
	return &respond.ContactRespond{UserId: "U_BOB", Name: "Bob", Email: req.Email}, nil
}
func (stubContactService) RemoveContact(ownerId, contactId string) error { return nil }
func (stubContactService) GetContactList(ownerId string) ([]respond.ContactRespond, error) {
	return []respond.ContactRespond{}, nil
}
func (stubContactService) GetCounterpartInfo(ownerId, counterpartId string) (*respond.CounterpartInfoRespond, error) {
	// 非联系人：名称门控为邮箱并携带警示
	return &respond.CounterpartInfoRespond{
		UserId:             counterpartId,
		DisplayName:        "bob@example.com",
		Email:              "bob@example.com",
		IsContact:          false,
		ShowContactWarning: true,
	}, nil
}

type stubSessionService struct{}

func (stubSessionService) ResolveOrCreateSession(userId, counterpartId string) (string, error) {
	return "S_TEST", nil
}
func (stubSessionService) GetSessionList(userId string) ([]respond.SessionListRespond, error) {
	return []respond.SessionListRespond{}, nil
}

type stubMessageService struct{}

func (stubMessageService) GetMessageList(sessionId string) ([]respond.MessageRespond, error) {
	return []respond.MessageRespond{{Uuid: "1", SessionId: sessionId}}, nil
}
func (stubMessageService) GetMessageListByPair(userId, counterpartId string) ([]respond.MessageRespond, error) {
	return []respond.MessageRespond{}, nil
}
func (stubMessageService) SendMessage(senderId string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	return &respond.MessageRespond{
		Uuid:          "100",
		SessionId:     "S_TEST",
		SenderId:      senderId,
		ReceiverId:    req.ReceiverId,
		Content:       req.Content,
		CorrelationId: req.CorrelationId,
	}, nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  json.RawMessage `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.Init("handler-test-secret", 60)
	if err := handler.InitTrans("zh"); err != nil {
		t.Fatal(err)
	}

	svc := &service.Services{
		User:    stubUserService{},
		Contact: stubContactService{},
		Session: stubSessionService{},
		Message: stubMessageService{},
	}
	broker := delivery.NewChannelBroker()
	t.Cleanup(broker.Close)
	gateway := websocket.NewGateway(broker, svc)
	return https_server.Init(handler.NewHandlers(svc, gateway))
}

func authedRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	token, err := jwt.GenerateAccessToken("U_ALICE", "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func do(t *testing.T, engine *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestRequestWithoutTokenRejected(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/contact/getContactList", nil)
	w, env := do(t, engine, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if env.Code != errorx.CodeUnauthorized {
		t.Fatalf("code = %d, want %d", env.Code, errorx.CodeUnauthorized)
	}
}

func TestGetCounterpartInfoGated(t *testing.T) {
	engine := newTestEngine(t)

	req := authedRequest(t, http.MethodGet, "/contact/getCounterpartInfo?counterpartId=U_BOB", nil)
	w, env := do(t, engine, req)
	if w.Code != http.StatusOK || env.Code != errorx.CodeSuccess {
		t.Fatalf("unexpected response: %d / %d", w.Code, env.Code)
	}

	var info respond.CounterpartInfoRespond
	if err := json.Unmarshal(env.Data, &info); err != nil {
		t.Fatal(err)
	}
	if info.DisplayName != "bob@example.com" || !info.ShowContactWarning {
		t.Fatalf("non-contact counterpart should be gated to email with warning: %+v", info)
	}
}

func TestAddContactInvalidEmail(t *testing.T) {
	engine := newTestEngine(t)

	req := authedRequest(t, http.MethodPost, "/contact/addContact", request.AddContactRequest{Email: "not-an-email"})
	_, env := do(t, engine, req)
	if env.Code != errorx.CodeInvalidParam {
		t.Fatalf("malformed email should fail validation, code = %d", env.Code)
	}
}

func TestAddContactUnknownEmail(t *testing.T) {
	engine := newTestEngine(t)

	req := authedRequest(t, http.MethodPost, "/contact/addContact", request.AddContactRequest{Email: "nobody@example.com"})
	_, env := do(t, engine, req)
	if env.Code != errorx.CodeNotFound {
		t.Fatalf("unknown email should map to CodeNotFound, code = %d", env.Code)
	}
}

func TestOpenSession(t *testing.T) {
	engine := newTestEngine(t)

	req := authedRequest(t, http.MethodPost, "/session/openSession", request.OpenSessionRequest{CounterpartId: "U_BOB"})
	_, env := do(t, engine, req)
	if env.Code != errorx.CodeSuccess {
		t.Fatalf("open session failed, code = %d", env.Code)
	}
	var rsp respond.OpenSessionRespond
	if err := json.Unmarshal(env.Data, &rsp); err != nil {
		t.Fatal(err)
	}
	if rsp.SessionId != "S_TEST" {
		t.Fatalf("session id = %s, want S_TEST", rsp.SessionId)
	}
}

func TestSendMessageEcho(t *testing.T) {
	engine := newTestEngine(t)

	req := authedRequest(t, http.MethodPost, "/message/sendMessage", request.SendMessageRequest{
		ReceiverId:    "U_BOB",
		Content:       "hello",
		CorrelationId: "corr-9",
	})
	_, env := do(t, engine, req)
	if env.Code != errorx.CodeSuccess {
		t.Fatalf("send failed, code = %d", env.Code)
	}
	var rsp respond.MessageRespond
	if err := json.Unmarshal(env.Data, &rsp); err != nil {
		t.Fatal(err)
	}
	if rsp.SenderId != "U_ALICE" || rsp.CorrelationId != "corr-9" {
		t.Fatalf("authoritative echo mismatch: %+v", rsp)
	}
}
