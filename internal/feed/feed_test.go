package feed

import (
	"testing"

	"peer_chat_server/internal/dto/respond"
)

func push(uuid, senderId, receiverId string) *respond.MessageRespond {
	return &respond.MessageRespond{
		Uuid:       uuid,
		SessionId:  "S1",
		SenderId:   senderId,
		ReceiverId: receiverId,
		Content:    "m" + uuid,
	}
}

func uuids(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Message.Uuid)
	}
	return ids
}

func TestIdleDropsPushes(t *testing.T) {
	f := New("U_ME")
	f.HandlePush(push("1", "U_BOB", "U_ME"))
	if len(f.Entries()) != 0 {
		t.Fatal("idle feed must drop pushes")
	}
	if f.State() != StateIdle {
		t.Fatal("feed should stay idle")
	}
}

func TestOpenBuffersThenDrains(t *testing.T) {
	f := New("U_ME")
	gen := f.Select("U_BOB")
	if f.State() != StateLoading {
		t.Fatal("select should enter loading")
	}

	// 历史拉取窗口内到达的推送
	f.HandlePush(push("3", "U_BOB", "U_ME"))
	f.HandlePush(push("4", "U_BOB", "U_ME"))

	// "3" 同时出现在历史和缓冲里，排干时必须去重
	history := []respond.MessageRespond{
		*push("1", "U_ME", "U_BOB"),
		*push("2", "U_BOB", "U_ME"),
		*push("3", "U_BOB", "U_ME"),
	}
	if !f.ApplyHistory(gen, history, "S1") {
		t.Fatal("history should apply")
	}
	if f.State() != StateLive {
		t.Fatal("feed should be live after history")
	}

	got := uuids(f.Entries())
	want := []string{"1", "2", "3", "4"}
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entries = %v, want %v", got, want)
		}
	}
}

func TestStaleHistoryDiscarded(t *testing.T) {
	f := New("U_ME")
	oldGen := f.Select("U_BOB")
	f.Select("U_CARA") // 用户在历史返回前切换了会话

	if f.ApplyHistory(oldGen, []respond.MessageRespond{*push("1", "U_BOB", "U_ME")}, "S1") {
		t.Fatal("history for a superseded selection must be discarded")
	}
	if f.State() != StateLoading {
		t.Fatal("feed should still be loading the new selection")
	}
	if len(f.Entries()) != 0 {
		t.Fatal("stale history must not leak into the new view")
	}
}

func TestLivePushFiltersOtherConversations(t *testing.T) {
	f := New("U_ME")
	gen := f.Select("U_BOB")
	f.ApplyHistory(gen, nil, "S1")

	f.HandlePush(push("1", "U_BOB", "U_ME"))  // 当前会话
	f.HandlePush(push("2", "U_CARA", "U_ME")) // 其他会话
	got := uuids(f.Entries())
	if len(got) != 1 || got[0] != "1" {
		t.Fatalf("entries = %v, want [1]", got)
	}
}

func TestLivePushDeduplicates(t *testing.T) {
	f := New("U_ME")
	gen := f.Select("U_BOB")
	f.ApplyHistory(gen, nil, "S1")

	msg := push("1", "U_BOB", "U_ME")
	f.HandlePush(msg)
	f.HandlePush(msg)
	if len(f.Entries()) != 1 {
		t.Fatal("duplicate push must render once")
	}
}

func TestAppendLocalRequiresLive(t *testing.T) {
	f := New("U_ME")
	if _, err := f.AppendLocal("hi"); err == nil {
		t.Fatal("append in idle should fail")
	}
	f.Select("U_BOB")
	if _, err := f.AppendLocal("hi"); err == nil {
		t.Fatal("append in loading should fail")
	}
}

func TestOptimisticSendReconciledByHTTP(t *testing.T) {
	f := New("U_ME")
	gen := f.Select("U_BOB")
	f.ApplyHistory(gen, nil, "S1")

	local, err := f.AppendLocal("hello")
	if err != nil {
		t.Fatal(err)
	}
	entries := f.Entries()
	if len(entries) != 1 || !entries[0].Pending {
		t.Fatalf("expected one pending entry, got %+v", entries)
	}

	authoritative := push("42", "U_ME", "U_BOB")
	authoritative.CorrelationId = local.CorrelationId
	f.Reconcile(authoritative)

	entries = f.Entries()
	if len(entries) != 1 {
		t.Fatalf("reconcile must replace in place, got %d entries", len(entries))
	}
	if entries[0].Pending || entries[0].Message.Uuid != "42" {
		t.Fatalf("entry not reconciled: %+v", entries[0])
	}
}

func TestOptimisticSendReconciledByPushFirst(t *testing.T) {
	f := New("U_ME")
	gen := f.Select("U_BOB")
	f.ApplyHistory(gen, nil, "S1")

	local, _ := f.AppendLocal("hello")

	// 回显先经推送到达（例如本用户的另一个标签页），HTTP 响应随后
	echoed := push("42", "U_ME", "U_BOB")
	echoed.CorrelationId = local.CorrelationId
	f.HandlePush(echoed)
	f.Reconcile(echoed)

	entries := f.Entries()
	if len(entries) != 1 || entries[0].Pending {
		t.Fatalf("push-first reconcile should leave a single settled entry: %+v", entries)
	}
}

func TestDropLocalRemovesPendingEntry(t *testing.T) {
	f := New("U_ME")
	gen := f.Select("U_BOB")
	f.ApplyHistory(gen, nil, "S1")

	local, _ := f.AppendLocal("will fail")
	f.DropLocal(local.CorrelationId)
	if len(f.Entries()) != 0 {
		t.Fatal("failed optimistic entry should be removed")
	}
}

func TestMarkContactFlipsGating(t *testing.T) {
	f := New("U_ME")
	f.Select("U_BOB")
	f.SetCounterpart(&respond.CounterpartInfoRespond{
		UserId:             "U_BOB",
		DisplayName:        "bob@example.com",
		Email:              "bob@example.com",
		IsContact:          false,
		ShowContactWarning: true,
	})

	f.MarkContact("Bob")
	info := f.Counterpart()
	if info == nil || !info.IsContact || info.ShowContactWarning || info.DisplayName != "Bob" {
		t.Fatalf("gating should flip in place: %+v", info)
	}
}

func TestDeselectClearsView(t *testing.T) {
	f := New("U_ME")
	gen := f.Select("U_BOB")
	f.ApplyHistory(gen, []respond.MessageRespond{*push("1", "U_BOB", "U_ME")}, "S1")

	f.Deselect()
	if f.State() != StateIdle || len(f.Entries()) != 0 || f.SessionId() != "" {
		t.Fatal("deselect should reset the view")
	}
}
