package delivery

import (
	"context"
	"testing"
	"time"

	"peer_chat_server/internal/dto/respond"
	"peer_chat_server/pkg/constants"
)

func testMessage(uuid, receiverId string) *respond.MessageRespond {
	return &respond.MessageRespond{
		Uuid:       uuid,
		SessionId:  "S_TEST",
		SenderId:   "U_SENDER",
		ReceiverId: receiverId,
		Content:    "hello",
	}
}

func recv(t *testing.T, sub *Subscription) *respond.MessageRespond {
	t.Helper()
	select {
	case msg := <-sub.C:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestChannelBrokerReceiverScoped(t *testing.T) {
	broker := NewChannelBroker()
	go broker.Start()
	defer broker.Close()

	subA, err := broker.Subscribe("U_A")
	if err != nil {
		t.Fatal(err)
	}
	subB, err := broker.Subscribe("U_B")
	if err != nil {
		t.Fatal(err)
	}

	if err := broker.Publish(context.Background(), testMessage("1", "U_B")); err != nil {
		t.Fatal(err)
	}

	got := recv(t, subB)
	if got.Uuid != "1" {
		t.Fatalf("receiver got uuid %s, want 1", got.Uuid)
	}
	// 其他用户的订阅不应收到
	select {
	case msg := <-subA.C:
		t.Fatalf("subscription for U_A received message %s", msg.Uuid)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChannelBrokerFanoutToAllSubscriptions(t *testing.T) {
	broker := NewChannelBroker()
	go broker.Start()
	defer broker.Close()

	sub1, _ := broker.Subscribe("U_B")
	sub2, _ := broker.Subscribe("U_B")

	if err := broker.Publish(context.Background(), testMessage("7", "U_B")); err != nil {
		t.Fatal(err)
	}
	if recv(t, sub1).Uuid != "7" {
		t.Fatal("first subscription missed the message")
	}
	if recv(t, sub2).Uuid != "7" {
		t.Fatal("second subscription missed the message")
	}
}

func TestChannelBrokerOrderPreserved(t *testing.T) {
	broker := NewChannelBroker()
	go broker.Start()
	defer broker.Close()

	sub, _ := broker.Subscribe("U_B")
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		if err := broker.Publish(ctx, testMessage(id, "U_B")); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range []string{"1", "2", "3"} {
		if got := recv(t, sub); got.Uuid != want {
			t.Fatalf("got uuid %s, want %s", got.Uuid, want)
		}
	}
}

func TestUnsubscribeClosesStream(t *testing.T) {
	broker := NewChannelBroker()
	defer broker.Close()

	sub, _ := broker.Subscribe("U_B")
	broker.Unsubscribe(sub)

	if _, ok := <-sub.C; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
	// 重复退订不应 panic
	broker.Unsubscribe(sub)
}

func TestDispatchDropsWhenBufferFull(t *testing.T) {
	r := newRegistry()
	sub := r.add("U_B")

	// 无消费者，填满缓冲后继续投递应丢弃而非阻塞
	for i := 0; i < constants.SUBSCRIBER_BUFFER+10; i++ {
		r.dispatch(testMessage("m", "U_B"))
	}
	if len(sub.C) != constants.SUBSCRIBER_BUFFER {
		t.Fatalf("buffer len = %d, want %d", len(sub.C), constants.SUBSCRIBER_BUFFER)
	}
}

func TestPublishAfterClose(t *testing.T) {
	broker := NewChannelBroker()
	broker.Close()

	if err := broker.Publish(context.Background(), testMessage("1", "U_B")); err == nil {
		t.Fatal("publish after close should fail")
	}
	if _, err := broker.Subscribe("U_B"); err == nil {
		t.Fatal("subscribe after close should fail")
	}
}
