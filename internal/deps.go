package internal

import (
	"synco/social-api/internal/privacy"
	"synco/social-api/internal/relations"
	"synco/social-api/internal/service"
	"synco/social-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Gate   *privacy.Gate
	Graph  *relations.Graph
	Mailer *service.Mailer
	Google *service.GoogleOAuth
}
