package model

import "time"

type RelationType string

const (
	RelationFriend   RelationType = "FR"
	RelationFollower RelationType = "FO"
	RelationBlocked  RelationType = "BL"
)

// UserRelation is a directed edge between two users. FRIEND edges are
// queried from both endpoints, FOLLOWER and BLOCKED only from the
// creating side. The composite unique index backs duplicate detection
// so that concurrent creates resolve to a constraint violation instead
// of a second row.
type UserRelation struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string       `gorm:"index:idx_user_to_relation,unique;index:idx_user_relation;not null" json:"-"`
	ToID      string       `gorm:"index:idx_user_to_relation,unique;index:idx_to_relation;not null" json:"-"`
	Relation  RelationType `gorm:"index:idx_user_to_relation,unique;index:idx_user_relation;index:idx_to_relation;size:2;not null" json:"relation"`
	CreatedAt time.Time    `json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	To   *User `gorm:"foreignKey:ToID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r RelationType) Valid() bool {
	switch r {
	case RelationFriend, RelationFollower, RelationBlocked:
		return true
	}
	return false
}
