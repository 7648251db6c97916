// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"candidate_backend/internal/feature/auth/domain/entity"
	"candidate_backend/internal/feature/auth/transport/http/dto"
	"candidate_backend/internal/feature/auth/usecase"
	jwtmw "candidate_backend/internal/platform/jwt"
	"candidate_backend/internal/shared/validation"
)

// AuthUsecase はハンドラーが必要とする認証操作を定義します。
// インターフェースは利用側（handler）で定義します。
type AuthUsecase interface {
	// Signup はユーザーを登録し、アクセストークンを返します。
	Signup(ctx context.Context, email, password string) (string, error)
	// Login はユーザーを認証し、アクセストークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler は /users エンドポイントを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler は AuthHandler の新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup は POST /users/register を処理します。
//   - バリデーションエラー時は400を返却
//   - メール重複時は409を返却
//   - 成功時はトークン付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": validation.Describe(err)})
		return
	}

	token, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": "email already taken"})
		return
	case errors.Is(err, usecase.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("user signup successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewTokenRes(token))
}

// Login は POST /users/login を処理します。
//   - バリデーションエラー時は400を返却
//   - 認証失敗時は401を返却（どちらが誤りかは返さない）
//   - 成功時はトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": validation.Describe(err)})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewTokenRes(token))
}

// Me は GET /users/me を処理します。jwtmw.AuthRequired の後ろで動かす必要があります。
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := jwtmw.CurrentUser[*entity.AuthenticatedUser](c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.MeRes{ID: user.ID, Email: user.Email})
}
