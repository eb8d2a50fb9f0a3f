// Package feed 实现会话视图控制器
// 供 Go 客户端（CLI、桌面端）在本地维护"当前打开的会话"：
// 状态机 Idle -> Loading -> Live，打开时先拉历史再放行推送，
// 推送在 Loading 期间缓冲，历史就绪后按 uuid 去重排干，保证无缝无重
package feed

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/pkg/errorx"
)

// State 视图状态
type State int

const (
	// StateIdle 未选中任何会话，推送一律丢弃
	StateIdle State = iota
	// StateLoading 已选中对端、历史尚未就绪，推送进入缓冲
	StateLoading
	// StateLive 历史已渲染，推送实时上屏
	StateLive
)

// Entry 视图中的一条消息
// Pending 为 true 表示乐观显示的本地副本，尚未收到权威回显
type Entry struct {
	Message respond.MessageRespond
	Pending bool
}

// Feed 会话视图控制器
// 所有方法并发安全，可同时被 UI 协程和推送消费协程调用
type Feed struct {
	mu sync.Mutex

	selfId        string
	state         State
	generation    int
	counterpartId string
	sessionId     string

	entries     []Entry
	pendingPush []respond.MessageRespond
	// seen 已上屏消息的 uuid，推送与历史排干共用的去重集合
	seen map[string]struct{}
	// byCorrelation 待对账的乐观条目下标，按关联 id 索引
	byCorrelation map[string]int

	counterpart *respond.CounterpartInfoRespond
}

// New 创建视图控制器，selfId 为本端用户 id
func New(selfId string) *Feed {
	return &Feed{
		selfId: selfId,
		state:  StateIdle,
	}
}

// Select 选中一个对端，进入 Loading
// 返回代数令牌，调用方拉取历史后凭它调用 ApplyHistory；
// 期间再次 Select 会使旧令牌失效，迟到的历史响应被丢弃
func (f *Feed) Select(counterpartId string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.state = StateLoading
	f.counterpartId = counterpartId
	f.sessionId = ""
	f.entries = nil
	f.pendingPush = nil
	f.seen = make(map[string]struct{})
	f.byCorrelation = make(map[string]int)
	f.counterpart = nil
	return f.generation
}

// Deselect 回到 Idle，清空视图
func (f *Feed) Deselect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.counterpartId = ""
	f.sessionId = ""
	f.entries = nil
	f.pendingPush = nil
	f.seen = nil
	f.byCorrelation = nil
	f.counterpart = nil
}

// ApplyHistory 历史拉取完成，渲染并进入 Live
// generation 与当前代数不符说明用户已切换会话，整批丢弃；
// 返回是否生效
func (f *Feed) ApplyHistory(generation int, history []respond.MessageRespond, sessionId string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateLoading || generation != f.generation {
		return false
	}

	f.sessionId = sessionId
	f.entries = make([]Entry, 0, len(history)+len(f.pendingPush))
	for _, msg := range history {
		if _, ok := f.seen[msg.Uuid]; ok {
			continue
		}
		f.seen[msg.Uuid] = struct{}{}
		f.entries = append(f.entries, Entry{Message: msg})
	}

	// 排干 Loading 期间缓冲的推送
	// 历史查询与推送订阅的窗口可能重叠，靠 uuid 去重消除交集
	buffered := f.pendingPush
	f.pendingPush = nil
	f.state = StateLive
	for i := range buffered {
		f.appendPushLocked(&buffered[i])
	}
	return true
}

// HandlePush 处理一条实时推送
// Idle 丢弃；Loading 缓冲；Live 过滤后上屏
func (f *Feed) HandlePush(msg *respond.MessageRespond) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateIdle:
		return
	case StateLoading:
		f.pendingPush = append(f.pendingPush, *msg)
	case StateLive:
		f.appendPushLocked(msg)
	}
}

// appendPushLocked 将一条推送并入视图，调用方需持锁
// 只接受属于当前会话的消息（对端发来的，或本端在别处发出的）
func (f *Feed) appendPushLocked(msg *respond.MessageRespond) {
	belongs := msg.SenderId == f.counterpartId ||
		(msg.SenderId == f.selfId && msg.ReceiverId == f.counterpartId)
	if !belongs {
		return
	}
	if _, ok := f.seen[msg.Uuid]; ok {
		return
	}
	// 关联 id 命中乐观条目时原位替换，不追加新行
	if idx, ok := f.byCorrelation[msg.CorrelationId]; ok && msg.CorrelationId != "" {
		f.entries[idx] = Entry{Message: *msg}
		delete(f.byCorrelation, msg.CorrelationId)
		f.seen[msg.Uuid] = struct{}{}
		return
	}
	f.seen[msg.Uuid] = struct{}{}
	f.entries = append(f.entries, Entry{Message: *msg})
}

// AppendLocal 乐观显示一条待发送消息
// 返回携带关联 id 的本地副本，调用方将其作为发送请求的 correlation_id；
// 权威回显到达后经 Reconcile 或推送对账原位替换
func (f *Feed) AppendLocal(content string) (*respond.MessageRespond, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateLive {
		return nil, errorx.New(errorx.CodeInvalidParam, "会话尚未就绪")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	local := respond.MessageRespond{
		SessionId:     f.sessionId,
		SenderId:      f.selfId,
		ReceiverId:    f.counterpartId,
		Content:       content,
		CorrelationId: uuid.NewString(),
		CreatedAt:     time.Now().Format("2006-01-02 15:04:05"),
	}
	f.entries = append(f.entries, Entry{Message: local, Pending: true})
	f.byCorrelation[local.CorrelationId] = len(f.entries) - 1
	return &local, nil
}

// Reconcile 用发送接口返回的权威回显替换乐观条目
// 找不到待对账条目时（如推送先一步完成对账）静默忽略
func (f *Feed) Reconcile(rsp *respond.MessageRespond) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, ok := f.byCorrelation[rsp.CorrelationId]
	if !ok {
		return
	}
	if _, dup := f.seen[rsp.Uuid]; dup {
		delete(f.byCorrelation, rsp.CorrelationId)
		return
	}
	f.entries[idx] = Entry{Message: *rsp}
	f.seen[rsp.Uuid] = struct{}{}
	delete(f.byCorrelation, rsp.CorrelationId)
}

// DropLocal 发送失败后移除乐观条目
func (f *Feed) DropLocal(correlationId string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, ok := f.byCorrelation[correlationId]
	if !ok {
		return
	}
	f.entries = append(f.entries[:idx], f.entries[idx+1:]...)
	delete(f.byCorrelation, correlationId)
	for cid, i := range f.byCorrelation {
		if i > idx {
			f.byCorrelation[cid] = i - 1
		}
	}
}

// SetCounterpart 设置对端信息（门控后的显示名称和警示标志）
func (f *Feed) SetCounterpart(info *respond.CounterpartInfoRespond) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counterpart = info
}

// MarkContact 对端被加为联系人后原地翻转门控
// name 来自添加联系人接口的响应，显示名称随之切换、警示条消失，
// 无需重新打开会话
func (f *Feed) MarkContact(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counterpart == nil {
		return
	}
	f.counterpart.IsContact = true
	f.counterpart.ShowContactWarning = false
	f.counterpart.DisplayName = name
}

// Counterpart 当前对端信息快照
func (f *Feed) Counterpart() *respond.CounterpartInfoRespond {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counterpart == nil {
		return nil
	}
	info := *f.counterpart
	return &info
}

// State 当前视图状态
func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SessionId 当前会话 id，Live 之前为空
func (f *Feed) SessionId() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionId
}

// CounterpartId 当前选中的对端 id
func (f *Feed) CounterpartId() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counterpartId
}

// Entries 视图条目快照
func (f *Feed) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := make([]Entry, len(f.entries))
	copy(snapshot, f.entries)
	return snapshot
}
