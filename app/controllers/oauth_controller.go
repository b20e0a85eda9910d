package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/app/models"
	"github.com/slotpress/slotpress/app/repository"
	"github.com/slotpress/slotpress/internal/pkg/database"
	"github.com/slotpress/slotpress/internal/pkg/session"
)

// HandleOAuthCallback completes the provider flow and logs the user in.
// Accounts are matched by email; a fresh account is created when no match
// exists.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	var appUser *models.User
	if u.Email != "" {
		appUser, err = userRepo.GetByEmail(u.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("db error: %v", err))
		}
	}

	if appUser == nil {
		// Password is a random placeholder, OAuth users never log in with it.
		placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
		hash, _ := models.HashPassword(placeholder)
		email := u.Email
		if email == "" {
			// Ensure a unique, non-empty email to satisfy the unique index.
			email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
		}
		appUser = &models.User{
			Name:      firstNonEmpty(u.Name, u.NickName, u.Email, "User"),
			Email:     email,
			Password:  hash,
			AvatarURL: u.AvatarURL,
			Role:      models.ROLE_USER,
			Status:    models.STATUS_ACTIVE,
		}
		if err := userRepo.Create(appUser); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
		}
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session init failed")
	}
	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, appUser.ID)
	sess.Set(USER_NAME, appUser.Name)
	sess.Set(USER_IS_ADMIN, appUser.IsAdmin())
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	_ = database.GetDB().Model(appUser).UpdateColumn("last_login_at", time.Now()).Error

	return c.Redirect("/")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
