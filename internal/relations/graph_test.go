package relations

import (
	"fmt"
	"testing"

	"gorm.io/gorm"

	"synco/social-api/db"
	"synco/social-api/internal/model"
)

func newTestGraph(t *testing.T) (*Graph, *gorm.DB) {
	t.Helper()

	conn, err := db.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	return NewGraph(conn), conn
}

func seedUsers(t *testing.T, conn *gorm.DB, ids ...string) {
	t.Helper()

	for _, id := range ids {
		u := model.User{
			ID:           id,
			Username:     id,
			Email:        id + "@example.com",
			PasswordHash: "x",
		}
		if err := conn.Create(&u).Error; err != nil {
			t.Fatalf("seed user %s: %v", id, err)
		}
	}
}

func TestCreateSelfRelation(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice")

	for _, rel := range []model.RelationType{model.RelationFriend, model.RelationFollower, model.RelationBlocked} {
		_, err := g.Create("alice", "alice", rel)
		if err != ErrSelfRelation {
			t.Fatalf("expected ErrSelfRelation for %s, got %v", rel, err)
		}
	}
}

func TestCreateInvalidRelation(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	_, err := g.Create("alice", "bob", "XX")
	if err != ErrInvalidRelation {
		t.Fatalf("expected ErrInvalidRelation, got %v", err)
	}
}

func TestFriendEdgeIsSymmetric(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	edge, err := g.Create("alice", "bob", model.RelationFriend)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The edge's raw user field is alice, but bob's list must report it
	// with alice as the other party
	edges, err := g.ListFor("bob", model.RelationFriend)
	if err != nil {
		t.Fatalf("list for bob: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge for bob, got %d", len(edges))
	}
	if edges[0].ID != edge.ID {
		t.Fatalf("expected edge %d, got %d", edge.ID, edges[0].ID)
	}
	if other := OtherParty(&edges[0], "bob"); other != "alice" {
		t.Fatalf("expected other party alice, got %s", other)
	}

	edges, err = g.ListFor("alice", model.RelationFriend)
	if err != nil {
		t.Fatalf("list for alice: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge for alice, got %d", len(edges))
	}
	if other := OtherParty(&edges[0], "alice"); other != "bob" {
		t.Fatalf("expected other party bob, got %s", other)
	}
}

func TestFollowerEdgeIsDirected(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	if _, err := g.Create("alice", "bob", model.RelationFollower); err != nil {
		t.Fatalf("create: %v", err)
	}

	edges, err := g.ListFor("alice", model.RelationFollower)
	if err != nil {
		t.Fatalf("list for alice: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge for alice, got %d", len(edges))
	}
	if other := OtherParty(&edges[0], "alice"); other != "bob" {
		t.Fatalf("expected other party bob, got %s", other)
	}

	edges, err = g.ListFor("bob", model.RelationFollower)
	if err != nil {
		t.Fatalf("list for bob: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected no follower edges for bob, got %d", len(edges))
	}
}

func TestDuplicateFriendEitherDirection(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	if _, err := g.Create("alice", "bob", model.RelationFriend); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := g.Create("alice", "bob", model.RelationFriend); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate same direction, got %v", err)
	}

	// The reverse direction is the same friendship
	if _, err := g.Create("bob", "alice", model.RelationFriend); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate reverse direction, got %v", err)
	}
}

func TestDirectedDuplicateOnlyExactDirection(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	if _, err := g.Create("alice", "bob", model.RelationFollower); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := g.Create("alice", "bob", model.RelationFollower); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// bob following alice back is a new edge
	if _, err := g.Create("bob", "alice", model.RelationFollower); err != nil {
		t.Fatalf("expected reverse follow to succeed, got %v", err)
	}
}

func TestCrossTypeEdgesCoexist(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	// alice follows bob while bob blocks alice, the graph stores both
	if _, err := g.Create("alice", "bob", model.RelationFollower); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if _, err := g.Create("bob", "alice", model.RelationBlocked); err != nil {
		t.Fatalf("block: %v", err)
	}

	edges, err := g.ListFor("alice", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected only alice's own follow edge, got %d", len(edges))
	}
}

func TestListForFilter(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob", "carol")

	if _, err := g.Create("alice", "bob", model.RelationFriend); err != nil {
		t.Fatalf("friend: %v", err)
	}
	if _, err := g.Create("alice", "carol", model.RelationFollower); err != nil {
		t.Fatalf("follow: %v", err)
	}

	all, err := g.ListFor("alice", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(all))
	}

	friends, err := g.ListFor("alice", model.RelationFriend)
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(friends) != 1 || friends[0].Relation != model.RelationFriend {
		t.Fatalf("expected 1 friend edge, got %+v", friends)
	}

	if _, err := g.ListFor("alice", "XX"); err != ErrInvalidRelation {
		t.Fatalf("expected ErrInvalidRelation for bad filter, got %v", err)
	}
}

func TestDeleteOnlyByCreator(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	edge, err := g.Create("alice", "bob", model.RelationFriend)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// bob sees the edge but didn't create it
	if err := g.Delete(edge.ID, "bob"); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if err := g.Delete(edge.ID, "alice"); err != nil {
		t.Fatalf("delete by creator: %v", err)
	}

	edges, err := g.ListFor("bob", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("expected edge gone from bob's list, got %d", len(edges))
	}

	if err := g.Delete(edge.ID, "alice"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for deleted edge, got %v", err)
	}
}

func TestExistsBetween(t *testing.T) {
	g, conn := newTestGraph(t)
	seedUsers(t, conn, "alice", "bob")

	if _, err := g.Create("alice", "bob", model.RelationFriend); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		exists, err := g.ExistsBetween(pair[0], pair[1], model.RelationFriend)
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if !exists {
			t.Fatalf("expected friend edge to exist between %s and %s", pair[0], pair[1])
		}
	}

	exists, err := g.ExistsBetween("alice", "bob", model.RelationBlocked)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected no blocked edge")
	}
}
