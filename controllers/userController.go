package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/models"
	"go-restaurant-ordering/repository"
	"go-restaurant-ordering/validation"
)

// UserStore is the persistence the back-office account handlers need.
type UserStore interface {
	Count(ctx context.Context) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateTokens(ctx context.Context, userID, token, refreshToken string) error
}

type UserController struct {
	users      UserStore
	tokens     *helpers.TokenHelper
	timeout    time.Duration
	log        *zap.Logger
	bcryptCost int
}

func NewUserController(users UserStore, tokens *helpers.TokenHelper, timeout time.Duration, log *zap.Logger) *UserController {
	return &UserController{
		users:      users,
		tokens:     tokens,
		timeout:    timeout,
		log:        log.Named("users"),
		bcryptCost: 14,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates a back-office account. The first account may be created
// anonymously; after that the caller must hold an ADMIN token.
func (uc *UserController) SignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), uc.timeout)
		defer cancel()

		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			bindError(c, err)
			return
		}
		if err := validation.Struct(&user); err != nil {
			respondError(c, uc.log, err)
			return
		}

		count, err := uc.users.Count(ctx)
		if err != nil {
			respondError(c, uc.log, err)
			return
		}
		if count > 0 && c.GetString("user_role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "only an admin can create users"})
			return
		}

		_, err = uc.users.FindByEmail(ctx, *user.Email)
		switch {
		case err == nil:
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		case !errors.Is(err, repository.ErrNotFound):
			respondError(c, uc.log, err)
			return
		}

		password, err := HashPassword(*user.Password, uc.bcryptCost)
		if err != nil {
			respondError(c, uc.log, err)
			return
		}
		user.Password = &password
		user.Token = nil
		user.Refresh_Token = nil

		if err := uc.users.Insert(ctx, &user); err != nil {
			respondError(c, uc.log, err)
			return
		}
		uc.log.Info("user created", zap.String("user_id", user.User_id), zap.String("role", *user.User_role))

		user.Password = nil
		c.JSON(http.StatusCreated, user)
	}
}

func (uc *UserController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), uc.timeout)
		defer cancel()

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		foundUser, err := uc.users.FindByEmail(ctx, req.Email)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}
		if err != nil {
			respondError(c, uc.log, err)
			return
		}
		if foundUser.Password == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email or password is incorrect"})
			return
		}
		if ok, msg := VerifyPassword(req.Password, *foundUser.Password); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		token, refreshToken, err := uc.tokens.GenerateAllTokens(deref(foundUser.Email), deref(foundUser.Name), foundUser.User_id, deref(foundUser.User_role))
		if err != nil {
			respondError(c, uc.log, err)
			return
		}
		if err := uc.users.UpdateTokens(ctx, foundUser.User_id, token, refreshToken); err != nil {
			respondError(c, uc.log, err)
			return
		}

		foundUser.Token = &token
		foundUser.Refresh_Token = &refreshToken
		foundUser.Password = nil
		c.JSON(http.StatusOK, foundUser)
	}
}

func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	if err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword)); err != nil {
		return false, "email or password is incorrect"
	}
	return true, ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
