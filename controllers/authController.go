package controllers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/mail"
	"os"
	"strings"
	"time"

	"voiceleads-backend/database"
	"voiceleads-backend/middlewares"
	"voiceleads-backend/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

type registerRequest struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
	WorkspaceName   string `json:"workspaceName" validate:"required,min=1,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates the user, their first workspace, and an OWNER membership
// in one transaction.
func Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Password != req.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	var existing models.User
	err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(req.Email),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return err
	}

	workspace := models.Workspace{Name: strings.TrimSpace(req.WorkspaceName)}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		membership := models.UserWorkspace{
			UserId:      user.Id,
			WorkspaceId: workspace.Id,
			Role:        models.RoleOwner,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "registration failed")
	}

	token, err := middlewares.GenerateJWT(user.Id, workspace.Id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"workspace": fiber.Map{
			"id":   workspace.Id,
			"name": workspace.Name,
		},
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

// Login authenticates with email/password and issues a token bound to one of
// the user's workspaces. An optional "workspaceId" selects which; otherwise
// the oldest membership wins.
func Login(c *fiber.Ctx) error {
	var req struct {
		loginRequest
		WorkspaceId string `json:"workspaceId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email format")
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := user.ComparePassword(req.Password); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	membership, err := resolveMembership(user.Id, req.WorkspaceId)
	if err != nil {
		return err
	}

	token, err := middlewares.GenerateJWT(user.Id, membership.WorkspaceId)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"workspace": fiber.Map{
			"id":   membership.WorkspaceId,
			"name": membership.Workspace.Name,
			"role": membership.Role,
		},
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

func resolveMembership(userID, workspaceID string) (*models.UserWorkspace, error) {
	q := database.DB.Preload("Workspace").Where("user_id = ?", userID)
	if strings.TrimSpace(workspaceID) != "" {
		q = q.Where("workspace_id = ?", workspaceID)
	}
	var membership models.UserWorkspace
	if err := q.Order("created_at ASC").First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "no workspace membership")
		}
		return nil, err
	}
	return &membership, nil
}

// SwitchWorkspace re-issues a token for another workspace the caller belongs
// to. Protected route: requires a valid token for the current workspace.
func SwitchWorkspace(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req struct {
		WorkspaceId string `json:"workspaceId" validate:"required"`
	}
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	membership, err := resolveMembership(userID, req.WorkspaceId)
	if err != nil {
		return err
	}

	token, err := middlewares.GenerateJWT(userID, membership.WorkspaceId)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"workspace": fiber.Map{
			"id":   membership.WorkspaceId,
			"name": membership.Workspace.Name,
			"role": membership.Role,
		},
	})
}

func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}

// ---- Google OAuth ----

func googleOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, fiber.NewError(fiber.StatusInternalServerError,
			"google OAuth not configured (set GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URL)")
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}, nil
}

// GoogleLogin redirects the browser to Google's consent screen. The state
// value is echoed back in a short-lived cookie and checked on callback.
func GoogleLogin(c *fiber.Ctx) error {
	conf, err := googleOAuthConfig()
	if err != nil {
		return err
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
	})

	return c.Redirect(conf.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleCallback exchanges the auth code, looks the user up by Google subject
// (falling back to email), provisions a user+workspace on first login, and
// issues our JWT.
func GoogleCallback(c *fiber.Ctx) error {
	conf, err := googleOAuthConfig()
	if err != nil {
		return err
	}

	if c.Query("state") == "" || c.Query("state") != c.Cookies("oauth_state") {
		return fiber.NewError(fiber.StatusUnauthorized, "OAuth state mismatch")
	}
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing OAuth code")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "OAuth code exchange failed")
	}

	resp, err := conf.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch Google profile")
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		return fiber.NewError(fiber.StatusInternalServerError, "invalid Google profile response")
	}

	user, workspaceID, err := findOrCreateGoogleUser(info)
	if err != nil {
		return err
	}

	jwtToken, err := middlewares.GenerateJWT(user.Id, workspaceID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": jwtToken,
		"workspace": fiber.Map{
			"id": workspaceID,
		},
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
		},
	})
}

func findOrCreateGoogleUser(info googleUserInfo) (*models.User, string, error) {
	email := strings.ToLower(info.Email)

	var user models.User
	err := database.DB.Where("google_sub = ?", info.Sub).Or("email = ?", email).First(&user).Error
	if err == nil {
		// Link the Google subject on first OAuth login for an existing account
		if user.GoogleSub == "" {
			_ = database.DB.Model(&user).Update("google_sub", info.Sub).Error
		}
		membership, mErr := resolveMembership(user.Id, "")
		if mErr != nil {
			return nil, "", mErr
		}
		return &user, membership.WorkspaceId, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	user = models.User{
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Email:     email,
		GoogleSub: info.Sub,
	}
	workspace := models.Workspace{Name: workspaceNameFor(info)}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		membership := models.UserWorkspace{
			UserId:      user.Id,
			WorkspaceId: workspace.Id,
			Role:        models.RoleOwner,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "account provisioning failed")
	}
	return &user, workspace.Id, nil
}

func workspaceNameFor(info googleUserInfo) string {
	name := strings.TrimSpace(info.GivenName)
	if name == "" {
		name = strings.Split(info.Email, "@")[0]
	}
	return name + "'s Workspace"
}
