// Package relation contains the relation graph endpoints
package relation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/relations"
)

type relatedUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type relationEntry struct {
	ID          uint               `json:"id"`
	Relation    model.RelationType `json:"relation"`
	RelatedUser relatedUser        `json:"related_user"`
	CreatedAt   int64              `json:"created_at"`
}

// RelationList returns the authenticated user's relations, optionally
// filtered by type. FRIEND edges show up regardless of which side
// created them, each entry rendering the other endpoint.
func RelationList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	filter := model.RelationType(c.Query("relation"))

	edges, err := d.Graph.ListFor(userID, filter)
	if err != nil {
		if err == relations.ErrInvalidRelation {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list relations", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	users, err := loadParties(d, edges, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load related users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	entries := make([]relationEntry, 0, len(edges))
	for i := range edges {
		e := &edges[i]
		other := users[relations.OtherParty(e, userID)]

		entries = append(entries, relationEntry{
			ID:       e.ID,
			Relation: e.Relation,
			RelatedUser: relatedUser{
				ID:        other.ID,
				Username:  other.Username,
				FirstName: other.FirstName,
				LastName:  other.LastName,
			},
			CreatedAt: e.CreatedAt.UnixMilli(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"relations": entries,
		"requestID": requestID,
	})
}

// loadParties batch-loads the user record behind the far endpoint of
// every edge.
func loadParties(d *internal.Deps, edges []model.UserRelation, viewerID string) (map[string]model.User, error) {
	ids := make([]string, 0, len(edges))
	for i := range edges {
		ids = append(ids, relations.OtherParty(&edges[i], viewerID))
	}

	users := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []model.User
	if err := d.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, u := range rows {
		users[u.ID] = u
	}

	return users, nil
}
