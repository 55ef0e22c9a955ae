package relation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/relations"
)

type createBody struct {
	To       string             `json:"to"`
	Relation model.RelationType `json:"relation"`
}

// RelationCreate adds an edge from the authenticated user to the target
// username. There is no request/accept handshake, the edge is live the
// moment it exists.
func RelationCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Relation == "" {
		data.Relation = model.RelationFriend
	}

	var target model.User
	if err := d.DB.Where("username = ?", data.To).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up target user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	edge, err := d.Graph.Create(userID, target.ID, data.Relation)
	if err != nil {
		switch err {
		case relations.ErrInvalidRelation:
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case relations.ErrSelfRelation, relations.ErrDuplicate:
			c.JSON(http.StatusConflict, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create relation", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        edge.ID,
		"relation":  edge.Relation,
		"requestID": requestID,
	})
}
