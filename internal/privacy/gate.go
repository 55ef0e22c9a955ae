// Package privacy decides whether a viewer may read another user's
// profile data, based on the owner's per-field visibility settings and
// the relation graph.
package privacy

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"synco/social-api/internal/model"
	"synco/social-api/internal/relations"
)

// FieldGroup names a bundle of profile data sharing one visibility
// setting. The set is closed, handlers pass one of the constants below.
type FieldGroup string

const (
	FieldProfile        FieldGroup = "profile"
	FieldAddress        FieldGroup = "address"
	FieldEducation      FieldGroup = "education"
	FieldWorkExperience FieldGroup = "work_experience"
)

type Gate struct {
	db    *gorm.DB
	graph *relations.Graph
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{
		db:    db,
		graph: relations.NewGraph(db),
	}
}

// CanView reports whether viewerID may read ownerID's data in the given
// field group. Owners always see their own data. A missing settings row
// counts as fully public. The check is a pure read, it never creates the
// settings row and must be re-run per request since relations and
// settings change. viewerID may be empty for anonymous viewers.
func (g *Gate) CanView(viewerID, ownerID string, field FieldGroup) (bool, error) {
	if viewerID != "" && viewerID == ownerID {
		return true, nil
	}

	var setting model.PrivacySetting

	err := g.db.Where("user_id = ?", ownerID).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}

	switch visibilityFor(&setting, field) {
	case model.VisibilityPublic:
		return true, nil
	case model.VisibilityPrivate:
		return false, nil
	case model.VisibilityFriends:
		if viewerID == "" {
			return false, nil
		}
		return g.graph.HaveFriendEdge(viewerID, ownerID)
	}

	return false, nil
}

// GetOrCreate returns the owner's privacy settings, creating a row with
// default (public) visibility on first access. The created flag tells the
// caller whether the row existed before.
func (g *Gate) GetOrCreate(ownerID string) (setting *model.PrivacySetting, created bool, err error) {
	setting = &model.PrivacySetting{}

	err = g.db.Where("user_id = ?", ownerID).First(setting).Error
	if err == nil {
		return setting, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	setting = defaultSetting(ownerID)
	if err := g.db.Create(setting).Error; err != nil {
		return nil, false, err
	}

	return setting, true, nil
}

func defaultSetting(ownerID string) *model.PrivacySetting {
	return &model.PrivacySetting{
		UserID:         ownerID,
		Profile:        model.VisibilityPublic,
		Address:        model.VisibilityPublic,
		Education:      model.VisibilityPublic,
		WorkExperience: model.VisibilityPublic,
	}
}

// The field group set is fixed at compile time. Hitting the default
// branch means a handler passed a group that doesn't exist, which is a
// bug, not user input.
func visibilityFor(s *model.PrivacySetting, field FieldGroup) model.Visibility {
	switch field {
	case FieldProfile:
		return s.Profile
	case FieldAddress:
		return s.Address
	case FieldEducation:
		return s.Education
	case FieldWorkExperience:
		return s.WorkExperience
	default:
		panic(fmt.Sprintf("privacy: unknown field group %q", field))
	}
}
