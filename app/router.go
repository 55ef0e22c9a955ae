// Package app wires the handlers, middleware and dependencies into the
// gin engine
package app

import (
	"strings"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"synco/social-api/app/account"
	"synco/social-api/app/geo"
	"synco/social-api/app/relation"
	"synco/social-api/app/root"
	"synco/social-api/app/user"
	"synco/social-api/config"
	"synco/social-api/db"
	"synco/social-api/internal"
	"synco/social-api/internal/privacy"
	"synco/social-api/internal/relations"
	"synco/social-api/internal/service"
	"synco/social-api/pkg/middleware"
	"synco/social-api/pkg/security"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	conn, err := db.New("database.db")
	if err != nil {
		return nil, err
	}

	if config.SeedGeo() {
		if err := db.SeedGeo(conn, "geo.json"); err != nil {
			return nil, err
		}
	}

	d := &internal.Deps{
		DB:     conn,
		Argon:  security.New(),
		Gate:   privacy.NewGate(conn),
		Graph:  relations.NewGraph(conn),
		Mailer: service.NewMailer(),
		Google: service.NewGoogleOAuth(),
	}

	service.TokenCleanup(time.Hour, conn)

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")

	jwt := middleware.NewJWTMiddleware(conn)
	optionalJWT := middleware.NewOptionalJWTMiddleware()
	bodyLimit := middleware.BodySizeLimiter(1 << 20)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		m.GET("/validate", jwt, root.Validate)

		// GET /api/verify-email/:token	-> Consumes an email verification token
		m.GET("/verify-email/:token", func(c *gin.Context) { user.UserVerify(c, d) })
	}

	u := m.Group("/users", bodyLimit)
	{
		// GET /api/users		-> Returns the current user's account data
		u.GET("", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users 		-> Registers a new user
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a JWT cookie
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/users/google	-> Logs in (or registers) through a Google OAuth code
		u.POST("/google", func(c *gin.Context) { user.UserGoogleLogin(c, d) })

		// GET /api/users/:username/email-token	-> Issues a fresh verification token
		u.GET("/:username/email-token", jwt, func(c *gin.Context) { user.UserEmailToken(c, d) })

		// PUT /api/users/:username/change-email -> Changes the account email
		u.PUT("/:username/change-email", jwt, func(c *gin.Context) { user.UserChangeEmail(c, d) })

		// GET/PATCH /api/users/:username/profile -> Profile, read privacy-gated
		u.GET("/:username/profile", optionalJWT, func(c *gin.Context) { account.ProfileFetch(c, d) })
		u.PATCH("/:username/profile", jwt, func(c *gin.Context) { account.ProfileUpdate(c, d) })

		// GET/PATCH /api/users/:username/address -> Address, read privacy-gated
		u.GET("/:username/address", optionalJWT, func(c *gin.Context) { account.AddressFetch(c, d) })
		u.PATCH("/:username/address", jwt, func(c *gin.Context) { account.AddressUpdate(c, d) })

		// Education entries, list privacy-gated, writes owner-only
		u.GET("/:username/education", optionalJWT, func(c *gin.Context) { account.EducationList(c, d) })
		u.POST("/:username/education", jwt, func(c *gin.Context) { account.EducationCreate(c, d) })
		u.PATCH("/:username/education/:id", jwt, func(c *gin.Context) { account.EducationUpdate(c, d) })
		u.DELETE("/:username/education/:id", jwt, func(c *gin.Context) { account.EducationDelete(c, d) })

		// Work experience entries, same shape as education
		u.GET("/:username/work-experience", optionalJWT, func(c *gin.Context) { account.WorkExperienceList(c, d) })
		u.POST("/:username/work-experience", jwt, func(c *gin.Context) { account.WorkExperienceCreate(c, d) })
		u.PATCH("/:username/work-experience/:id", jwt, func(c *gin.Context) { account.WorkExperienceUpdate(c, d) })
		u.DELETE("/:username/work-experience/:id", jwt, func(c *gin.Context) { account.WorkExperienceDelete(c, d) })

		// GET/PATCH /api/users/:username/privacy -> Privacy settings, owner-only both ways
		u.GET("/:username/privacy", jwt, func(c *gin.Context) { account.PrivacyFetch(c, d) })
		u.PATCH("/:username/privacy", jwt, func(c *gin.Context) { account.PrivacyUpdate(c, d) })
	}

	r := m.Group("/relations", jwt, bodyLimit)
	{
		// GET /api/relations		-> Lists the current user's relations
		r.GET("", func(c *gin.Context) { relation.RelationList(c, d) })

		// POST /api/relations		-> Creates a relation to another user
		r.POST("", func(c *gin.Context) { relation.RelationCreate(c, d) })

		// DELETE /api/relations/:id	-> Deletes a relation the user created
		r.DELETE("/:id", func(c *gin.Context) { relation.RelationDelete(c, d) })
	}

	g := m.Group("/geo")
	{
		// GET /api/geo/countries		-> Lists countries
		g.GET("/countries", cacheFor(5*60), func(c *gin.Context) { geo.CountryList(c, d) })

		// GET /api/geo/countries/:code/cities	-> Lists a country's cities
		g.GET("/countries/:code/cities", cacheFor(5*60), func(c *gin.Context) { geo.CityList(c, d) })
	}

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
