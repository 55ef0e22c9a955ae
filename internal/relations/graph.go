// Package relations stores and queries the typed relation edges between
// users. FRIEND edges behave as undirected for every query, FOLLOWER and
// BLOCKED edges only ever show up on the side that created them.
package relations

import (
	"errors"

	"gorm.io/gorm"

	"synco/social-api/internal/model"
)

var (
	ErrSelfRelation    = errors.New("you cannot create a relation with yourself")
	ErrDuplicate       = errors.New("the relation already exists")
	ErrInvalidRelation = errors.New("unknown relation type")
	ErrNotFound        = errors.New("relation not found")
	ErrNotOwner        = errors.New("only the creator of a relation can delete it")
)

type Graph struct {
	db *gorm.DB
}

func NewGraph(db *gorm.DB) *Graph {
	return &Graph{db: db}
}

// Create inserts a new edge from userID to toID. Self-relations and
// duplicates are rejected. The duplicate check for FRIEND edges looks in
// both directions, so B befriending A while A already befriended B is a
// conflict rather than a second row. A concurrent insert losing the race
// hits the unique triple index and is reported as ErrDuplicate too.
func (g *Graph) Create(userID, toID string, rel model.RelationType) (*model.UserRelation, error) {
	if !rel.Valid() {
		return nil, ErrInvalidRelation
	}

	if userID == toID {
		return nil, ErrSelfRelation
	}

	exists, err := g.ExistsBetween(userID, toID, rel)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrDuplicate
	}

	edge := &model.UserRelation{
		UserID:   userID,
		ToID:     toID,
		Relation: rel,
	}

	if err := g.db.Create(edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return edge, nil
}

// Delete removes an edge. Only the user that created it may do so, the
// other endpoint of a FRIEND edge gets ErrNotOwner.
func (g *Graph) Delete(edgeID uint, requesterID string) error {
	var edge model.UserRelation

	err := g.db.Where("id = ?", edgeID).First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if edge.UserID != requesterID {
		return ErrNotOwner
	}

	return g.db.Delete(&model.UserRelation{}, edge.ID).Error
}

// ListFor returns every edge describing userID's relationships, newest
// first. FRIEND edges match on either endpoint, everything else only on
// the creating side. An empty filter returns all relation types.
func (g *Graph) ListFor(userID string, filter model.RelationType) ([]model.UserRelation, error) {
	if filter != "" && !filter.Valid() {
		return nil, ErrInvalidRelation
	}

	q := g.db.
		Where("relation = ? AND (user_id = ? OR to_id = ?)", model.RelationFriend, userID, userID).
		Or("relation <> ? AND user_id = ?", model.RelationFriend, userID)

	query := g.db.Where(q)
	if filter != "" {
		query = query.Where("relation = ?", filter)
	}

	var edges []model.UserRelation
	err := query.Order("created_at desc").Find(&edges).Error
	if err != nil {
		return nil, err
	}

	return edges, nil
}

// ExistsBetween reports whether an equivalent edge is already present
// under the relation's symmetry rule: both directions for FRIEND, the
// exact direction otherwise.
func (g *Graph) ExistsBetween(userID, toID string, rel model.RelationType) (bool, error) {
	query := g.db.Model(model.UserRelation{}).Where("relation = ?", rel)

	if rel == model.RelationFriend {
		query = query.Where("(user_id = ? AND to_id = ?) OR (user_id = ? AND to_id = ?)",
			userID, toID, toID, userID)
	} else {
		query = query.Where("user_id = ? AND to_id = ?", userID, toID)
	}

	var exists bool
	err := query.Select("count(*) > 0").Find(&exists).Error
	if err != nil {
		return false, err
	}

	return exists, nil
}

// HaveFriendEdge reports whether a FRIEND edge links a and b in either
// direction.
func (g *Graph) HaveFriendEdge(a, b string) (bool, error) {
	return g.ExistsBetween(a, b, model.RelationFriend)
}

// OtherParty returns the user ID on the far side of an edge from the
// viewer's perspective. For FRIEND edges that is whichever endpoint the
// viewer isn't, for directed edges it is always the target.
func OtherParty(e *model.UserRelation, viewerID string) string {
	if e.Relation == model.RelationFriend && e.UserID != viewerID {
		return e.UserID
	}
	return e.ToID
}
