package privacy

import (
	"fmt"
	"testing"

	"gorm.io/gorm"

	"synco/social-api/db"
	"synco/social-api/internal/model"
	"synco/social-api/internal/relations"
)

func newTestGate(t *testing.T) (*Gate, *gorm.DB) {
	t.Helper()

	conn, err := db.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	return NewGate(conn), conn
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

func setPrivacy(t *testing.T, conn *gorm.DB, userID string, field FieldGroup, v model.Visibility) {
	t.Helper()

	setting := model.PrivacySetting{
		UserID:         userID,
		Profile:        model.VisibilityPublic,
		Address:        model.VisibilityPublic,
		Education:      model.VisibilityPublic,
		WorkExperience: model.VisibilityPublic,
	}

	switch field {
	case FieldProfile:
		setting.Profile = v
	case FieldAddress:
		setting.Address = v
	case FieldEducation:
		setting.Education = v
	case FieldWorkExperience:
		setting.WorkExperience = v
	}

	if err := conn.Save(&setting).Error; err != nil {
		t.Fatalf("save privacy: %v", err)
	}
}

func TestOwnerAlwaysSeesOwnData(t *testing.T) {
	g, conn := newTestGate(t)
	seedUsers(t, conn, "alice")

	for _, field := range []FieldGroup{FieldProfile, FieldAddress, FieldEducation, FieldWorkExperience} {
		setPrivacy(t, conn, "alice", field, model.VisibilityPrivate)

		ok, err := g.CanView("alice", "alice", field)
		if err != nil {
			t.Fatalf("can view: %v", err)
		}
		if !ok {
			t.Fatalf("owner must see own %s even when private", field)
		}
	}
}

func TestMissingSettingsRowIsPublic(t *testing.T) {
	g, conn := newTestGate(t)
	seedUsers(t, conn, "alice", "bob")

	ok, err := g.CanView("bob", "alice", FieldProfile)
	if err != nil {
		t.Fatalf("can view: %v", err)
	}
	if !ok {
		t.Fatal("no settings row must default to public")
	}

	// The read path never creates the row
	var count int64
	if err := conn.Model(model.PrivacySetting{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("CanView persisted a settings row, count %d", count)
	}
}

func TestPrivateDeniesEveryoneButOwner(t *testing.T) {
	g, conn := newTestGate(t)
	seedUsers(t, conn, "alice", "bob")
	setPrivacy(t, conn, "alice", FieldAddress, model.VisibilityPrivate)

	ok, err := g.CanView("bob", "alice", FieldAddress)
	if err != nil {
		t.Fatalf("can view: %v", err)
	}
	if ok {
		t.Fatal("private field must be hidden from other users")
	}

	// Anonymous viewer
	ok, err = g.CanView("", "alice", FieldAddress)
	if err != nil {
		t.Fatalf("can view: %v", err)
	}
	if ok {
		t.Fatal("private field must be hidden from anonymous viewers")
	}
}

func TestFriendsVisibilityFollowsRelationGraph(t *testing.T) {
	g, conn := newTestGate(t)
	seedUsers(t, conn, "alice", "bob")
	setPrivacy(t, conn, "alice", FieldProfile, model.VisibilityFriends)

	ok, err := g.CanView("bob", "alice", FieldProfile)
	if err != nil {
		t.Fatalf("can view: %v", err)
	}
	if ok {
		t.Fatal("non-friend must not see a friends-only field")
	}

	// The friendship direction doesn't matter, bob created the edge here
	graph := relations.NewGraph(conn)
	if _, err := graph.Create("bob", "alice", model.RelationFriend); err != nil {
		t.Fatalf("create edge: %v", err)
	}

	ok, err = g.CanView("bob", "alice", FieldProfile)
	if err != nil {
		t.Fatalf("can view: %v", err)
	}
	if !ok {
		t.Fatal("friend must see a friends-only field")
	}

	ok, err = g.CanView("", "alice", FieldProfile)
	if err != nil {
		t.Fatalf("can view: %v", err)
	}
	if ok {
		t.Fatal("anonymous viewer can't be a friend")
	}
}

func TestFollowerDoesNotGrantFriendsVisibility(t *testing.T) {
	g, conn := newTestGate(t)
	seedUsers(t, conn, "alice", "bob")
	setPrivacy(t, conn, "alice", FieldEducation, model.VisibilityFriends)

	graph := relations.NewGraph(conn)
	if _, err := graph.Create("bob", "alice", model.RelationFollower); err != nil {
		t.Fatalf("create edge: %v", err)
	}

	ok, err := g.CanView("bob", "alice", FieldEducation)
	if err != nil {
		t.Fatalf("can view: %v", err)
	}
	if ok {
		t.Fatal("a follower is not a friend")
	}
}

func TestGetOrCreate(t *testing.T) {
	g, conn := newTestGate(t)
	seedUsers(t, conn, "alice")

	setting, created, err := g.GetOrCreate("alice")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if !created {
		t.Fatal("expected first access to create the row")
	}
	if setting.Profile != model.VisibilityPublic || setting.WorkExperience != model.VisibilityPublic {
		t.Fatalf("expected public defaults, got %+v", setting)
	}

	_, created, err = g.GetOrCreate("alice")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if created {
		t.Fatal("expected second access to find the existing row")
	}
}

func TestUnknownFieldGroupPanics(t *testing.T) {
	g, conn := newTestGate(t)
	seedUsers(t, conn, "alice", "bob")
	setPrivacy(t, conn, "alice", FieldProfile, model.VisibilityPublic)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown field group")
		}
	}()

	g.CanView("bob", "alice", FieldGroup("does_not_exist"))
}
