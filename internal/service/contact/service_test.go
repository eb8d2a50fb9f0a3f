package contact

import (
	"context"
	"sort"
	"testing"
	"time"

	"peer_chat_server/internal/dao/mysql"
	"peer_chat_server/internal/dto/request"
	"peer_chat_server/internal/model"
	"peer_chat_server/pkg/errorx"
)

// stubCache 内存版缓存，SubmitTask 同步执行便于断言
type stubCache struct {
	kv   map[string]string
	sets map[string]map[string]struct{}
}

func newStubCache() *stubCache {
	return &stubCache{
		kv:   make(map[string]string),
		sets: make(map[string]map[string]struct{}),
	}
}

func (s *stubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.kv[key] = value
	return nil
}
func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	return s.kv[key], nil
}
func (s *stubCache) GetOrError(ctx context.Context, key string) (string, error) {
	if v, ok := s.kv[key]; ok {
		return v, nil
	}
	return "", errorx.New(errorx.CodeNotFound, "key不存在")
}
func (s *stubCache) Delete(ctx context.Context, key string) error {
	delete(s.kv, key)
	delete(s.sets, key)
	return nil
}
func (s *stubCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	if s.sets[key] == nil {
		s.sets[key] = make(map[string]struct{})
	}
	for _, m := range members {
		s.sets[key][m.(string)] = struct{}{}
	}
	return nil
}
func (s *stubCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	members := make([]string, 0)
	for m := range s.sets[key] {
		members = append(members, m)
	}
	return members, nil
}
func (s *stubCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	for _, m := range members {
		delete(s.sets[key], m.(string))
	}
	return nil
}
func (s *stubCache) IsSetMember(ctx context.Context, key string, member interface{}) (bool, error) {
	_, ok := s.sets[key][member.(string)]
	return ok, nil
}
func (s *stubCache) SubmitTask(action func()) { action() }

type stubUserRepo struct {
	users map[string]*model.UserProfile
}

func (s *stubUserRepo) FindByUuid(uuid string) (*model.UserProfile, error) {
	if u, ok := s.users[uuid]; ok {
		return u, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}
func (s *stubUserRepo) FindByEmail(email string) (*model.UserProfile, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}
func (s *stubUserRepo) FindByUuids(uuids []string) ([]model.UserProfile, error) {
	result := make([]model.UserProfile, 0)
	for _, id := range uuids {
		if u, ok := s.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}
func (s *stubUserRepo) Create(user *model.UserProfile) error        { return nil }
func (s *stubUserRepo) UpdateOnline(uuid string, online bool) error { return nil }

type stubContactRepo struct {
	edges   []model.ContactEdge
	deletes int
}

func (s *stubContactRepo) FindByOwnerAndContact(ownerId, contactId string) (*model.ContactEdge, error) {
	for i := range s.edges {
		if s.edges[i].OwnerId == ownerId && s.edges[i].ContactId == contactId {
			return &s.edges[i], nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "联系人不存在")
}
func (s *stubContactRepo) FindByOwnerId(ownerId string) ([]model.ContactEdge, error) {
	result := make([]model.ContactEdge, 0)
	for _, e := range s.edges {
		if e.OwnerId == ownerId {
			result = append(result, e)
		}
	}
	return result, nil
}
func (s *stubContactRepo) Create(edge *model.ContactEdge) error {
	for _, e := range s.edges {
		if e.OwnerId == edge.OwnerId && e.ContactId == edge.ContactId {
			return errorx.New(errorx.CodeAlreadyExists, "联系人已存在")
		}
	}
	s.edges = append(s.edges, *edge)
	return nil
}
func (s *stubContactRepo) DeleteByOwnerAndContact(ownerId, contactId string) error {
	s.deletes++
	kept := s.edges[:0]
	for _, e := range s.edges {
		if !(e.OwnerId == ownerId && e.ContactId == contactId) {
			kept = append(kept, e)
		}
	}
	s.edges = kept
	return nil
}

type noopSessionRepo struct{}

func (noopSessionRepo) FindByPairKey(pairKey string) (*model.ChatSession, error) {
	return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
}
func (noopSessionRepo) FindByUuid(uuid string) (*model.ChatSession, error) {
	return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
}
func (noopSessionRepo) FindByParticipant(userId string) ([]model.ChatSession, error) {
	return nil, nil
}
func (noopSessionRepo) Create(session *model.ChatSession) error { return nil }

type noopMessageRepo struct{}

func (noopMessageRepo) FindBySessionId(sessionId string) ([]model.Message, error) { return nil, nil }
func (noopMessageRepo) FindByParticipants(userOneId, userTwoId string) ([]model.Message, error) {
	return nil, nil
}
func (noopMessageRepo) FindSessionIdByParticipants(userOneId, userTwoId string) (string, error) {
	return "", nil
}
func (noopMessageRepo) FindLatestByParticipant(userId string) ([]model.Message, error) {
	return nil, nil
}
func (noopMessageRepo) Create(message *model.Message) error { return nil }

func newTestService(contactRepo *stubContactRepo) *contactService {
	users := map[string]*model.UserProfile{
		"U_ALICE": {Uuid: "U_ALICE", Name: "Alice", Email: "alice@example.com"},
		"U_BOB":   {Uuid: "U_BOB", Name: "Bob", Email: "bob@example.com", Online: true},
		"U_CARA":  {Uuid: "U_CARA", Name: "Cara", Email: "cara@example.com"},
	}
	repos := mysql.NewRepositoriesFrom(
		&stubUserRepo{users: users},
		contactRepo,
		noopSessionRepo{},
		noopMessageRepo{},
	)
	return NewContactService(repos, newStubCache())
}

func TestAddContactUnknownEmail(t *testing.T) {
	svc := newTestService(&stubContactRepo{})
	_, err := svc.AddContact("U_ALICE", request.AddContactRequest{Email: "nobody@example.com"})
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("unknown email should fail with CodeNotFound, got %v", err)
	}
}

func TestAddContactSelf(t *testing.T) {
	svc := newTestService(&stubContactRepo{})
	_, err := svc.AddContact("U_ALICE", request.AddContactRequest{Email: "alice@example.com"})
	if errorx.GetCode(err) != errorx.CodeSelfReference {
		t.Fatalf("adding self should fail with CodeSelfReference, got %v", err)
	}
}

func TestAddContactDuplicate(t *testing.T) {
	contactRepo := &stubContactRepo{edges: []model.ContactEdge{{OwnerId: "U_ALICE", ContactId: "U_BOB"}}}
	svc := newTestService(contactRepo)
	_, err := svc.AddContact("U_ALICE", request.AddContactRequest{Email: "bob@example.com"})
	if errorx.GetCode(err) != errorx.CodeAlreadyExists {
		t.Fatalf("duplicate add should fail with CodeAlreadyExists, got %v", err)
	}
}

func TestAddContactOneWay(t *testing.T) {
	contactRepo := &stubContactRepo{}
	svc := newTestService(contactRepo)

	added, err := svc.AddContact("U_ALICE", request.AddContactRequest{Email: "bob@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if added.UserId != "U_BOB" || added.Name != "Bob" {
		t.Fatalf("unexpected contact respond: %+v", added)
	}

	isContact, err := svc.IsContact("U_ALICE", "U_BOB")
	if err != nil || !isContact {
		t.Fatalf("U_BOB should be contact of U_ALICE, got (%v, %v)", isContact, err)
	}
	// 单向边：反方向不自动成立
	reverse, err := svc.IsContact("U_BOB", "U_ALICE")
	if err != nil || reverse {
		t.Fatalf("contact edge must be one-way, got (%v, %v)", reverse, err)
	}
}

func TestRemoveContactSilentWhenAbsent(t *testing.T) {
	contactRepo := &stubContactRepo{}
	svc := newTestService(contactRepo)

	if err := svc.RemoveContact("U_ALICE", "U_BOB"); err != nil {
		t.Fatalf("removing absent contact should succeed silently, got %v", err)
	}
	if contactRepo.deletes != 1 {
		t.Fatal("delete should still reach the repository")
	}
}

func TestGetContactListSorted(t *testing.T) {
	contactRepo := &stubContactRepo{edges: []model.ContactEdge{
		{OwnerId: "U_ALICE", ContactId: "U_CARA"},
		{OwnerId: "U_ALICE", ContactId: "U_BOB"},
	}}
	svc := newTestService(contactRepo)

	contactList, err := svc.GetContactList("U_ALICE")
	if err != nil {
		t.Fatal(err)
	}
	if len(contactList) != 2 {
		t.Fatalf("got %d contacts, want 2", len(contactList))
	}
	if !sort.SliceIsSorted(contactList, func(i, j int) bool {
		return contactList[i].Name < contactList[j].Name
	}) {
		t.Fatal("contact list should be sorted by name")
	}
}

func TestGetCounterpartInfoGating(t *testing.T) {
	contactRepo := &stubContactRepo{edges: []model.ContactEdge{{OwnerId: "U_ALICE", ContactId: "U_BOB"}}}
	svc := newTestService(contactRepo)

	// 联系人：显示名称，无警示
	info, err := svc.GetCounterpartInfo("U_ALICE", "U_BOB")
	if err != nil {
		t.Fatal(err)
	}
	if info.DisplayName != "Bob" || info.ShowContactWarning {
		t.Fatalf("contact counterpart should show name without warning: %+v", info)
	}

	// 非联系人：显示邮箱并携带警示
	info, err = svc.GetCounterpartInfo("U_ALICE", "U_CARA")
	if err != nil {
		t.Fatal(err)
	}
	if info.DisplayName != "cara@example.com" || !info.ShowContactWarning || info.IsContact {
		t.Fatalf("non-contact counterpart should show email with warning: %+v", info)
	}
}

func TestGetCounterpartInfoUnknownUser(t *testing.T) {
	svc := newTestService(&stubContactRepo{})
	_, err := svc.GetCounterpartInfo("U_ALICE", "U_GHOST")
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("unknown counterpart should fail with CodeNotFound, got %v", err)
	}
}
