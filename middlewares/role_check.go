package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewline/coffee-shop/models"
	"github.com/brewline/coffee-shop/utils"
)

// BaristaOnly gates the dashboard. It fetches the caller's profile row fresh
// on every request and fails closed: a missing profile, a non-barista role,
// or a fetch failure all blacklist the presented token and reject, so a
// revoked account cannot ride out its token's lifetime.
func BaristaOnly(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, exists := c.Get("user_id")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		userID, ok := userIDValue.(uint)
		if !ok || userID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user id"))
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			signOut(c)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("profile not found"))
			} else {
				utils.ErrorLogger.Printf("Error verifying user %d: %v", userID, err)
				utils.RespondError(c, http.StatusUnauthorized, errors.New("could not verify user"))
			}
			c.Abort()
			return
		}

		if user.Role != models.RoleBarista {
			signOut(c)
			utils.RespondError(c, http.StatusForbidden, errors.New("access denied: barista access only"))
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

func signOut(c *gin.Context) {
	if token := c.GetString("token"); token != "" {
		utils.BlacklistToken(token)
	}
}
