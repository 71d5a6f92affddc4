package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/misbahulhassan/Aeroflux-Electric/configs"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/repo"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

// AuthHandler owns the identity surface: sign-up, sign-in and sign-out.
// Sessions are stateless HS256 JWTs carrying the stable user id.
type AuthHandler struct {
	cfg   configs.Config
	users usecase.UserRepo
}

func NewAuthHandler(cfg configs.Config, users usecase.UserRepo) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users}
}

type signUpReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type signInReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	user := &usecase.UserRecord{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
			return
		}
		logging.From(c).Error("sign up failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	h.issueSession(c, user)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		logging.From(c).Error("sign in failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	h.issueSession(c, user)
}

// SignOut is a client affair with stateless sessions; the endpoint exists so
// the storefront has a single place to hook server-side revocation later.
func (h *AuthHandler) SignOut(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) issueSession(c *gin.Context, user *usecase.UserRecord) {
	now := time.Now()
	ttl := h.cfg.Security.TTL
	claims := jwt.MapClaims{
		"iss":   h.cfg.Security.Issuer,
		"aud":   h.cfg.Security.Audience,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, sessionResp{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
	})
}
