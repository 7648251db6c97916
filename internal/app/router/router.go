// Package router はAPIサーバーのルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	authentity "candidate_backend/internal/feature/auth/domain/entity"
	authhandler "candidate_backend/internal/feature/auth/transport/handler"
	candidatehandler "candidate_backend/internal/feature/candidates/transport/handler"
	reporthandler "candidate_backend/internal/feature/report/transport/handler"
	platformhandler "candidate_backend/internal/platform/http/handler"
	jwtmw "candidate_backend/internal/platform/jwt"
	"candidate_backend/internal/shared/ratelimiter"
	"candidate_backend/internal/shared/validation"
)

// Handlers はルーターに登録するハンドラーをまとめます。
type Handlers struct {
	Health     *platformhandler.HealthHandler
	Auth       *authhandler.AuthHandler
	Candidates *candidatehandler.CandidateHandler
	Skills     *candidatehandler.SkillHandler
	Report     *reporthandler.ReportHandler
}

// NewRouter はginエンジンを構築します。resolver はBearerトークンを認証し、
// authLimiter は認証系エンドポイントの頻度を制限します。
func NewRouter(h Handlers, resolver jwtmw.Resolver[*authentity.AuthenticatedUser], authLimiter *ratelimiter.RateLimiter) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 認証不要
	r.GET("/healthz", h.Health.Live)
	r.HEAD("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)

	limited := ratelimiter.Middleware(authLimiter)
	r.POST("/users/register", limited, h.Auth.Signup)
	r.POST("/users/login", limited, h.Auth.Login)

	// 認証必須
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(resolver))
	{
		auth.GET("/users/me", h.Auth.Me)

		candidates := auth.Group("/candidates")
		candidates.GET("", h.Candidates.List)
		candidates.GET("/all", h.Candidates.Search)
		candidates.GET("/generate-report", h.Report.GenerateReport)
		candidates.POST("", h.Candidates.Create)
		candidates.GET("/:id", h.Candidates.Get)
		candidates.DELETE("/:id", h.Candidates.Delete)
		candidates.POST("/:id/experience", h.Candidates.AddExperience)

		skills := auth.Group("/skills")
		skills.POST("", h.Skills.Create)
		skills.GET("/candidate/:candidate_id", h.Skills.ListByCandidate)
		skills.GET("/:id", h.Skills.Get)
		skills.PUT("/:id", h.Skills.Update)
		skills.DELETE("/:id", h.Skills.Delete)
	}

	return r, nil
}
