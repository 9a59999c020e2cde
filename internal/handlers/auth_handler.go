package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
	"github.com/farellandr/dataswift/internal/store"
)

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Name       string `json:"name"`
}

type PasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// Login resolves an identifier/password pair to an existing account, or
// signs up a new one when a name is supplied. Self-signup always yields the
// user role; staff accounts are provisioned through the admin console.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	user, found := st.FindByCredentials(req.Identifier, req.Password)
	if !found {
		if req.Name == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Account not found. Please sign up if you don't have an account.")
			return
		}
		if len(req.Password) < 6 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Password must be at least 6 characters.")
			return
		}

		phone, email := req.Identifier, ""
		if strings.Contains(req.Identifier, "@") {
			phone, email = "", req.Identifier
		}
		user = st.AddUser(req.Name, phone, email, req.Password)
	}

	st.EstablishSession(user)

	tokenString, err := issueToken(user)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
		"view":  models.ViewDashboard,
	})
}

// issueToken signs the session token. There is no expiry claim: a session
// is valid indefinitely until explicit logout.
func issueToken(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return token.SignedString([]byte(secret))
}

func Logout(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	st.ClearSession()

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully.",
		"view":    models.ViewDashboard,
	})
}

// GetSession returns the persisted session so a reload resumes where the
// client left off.
func GetSession(c *gin.Context) {
	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	authenticated, user, view := st.Session()

	resp := gin.H{
		"authenticated": authenticated,
		"view":          view,
	}
	if user != nil {
		resp["user"] = user
	}
	c.JSON(http.StatusOK, resp)
}

// UpdatePassword is the self-service password change on the settings view.
func UpdatePassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Password must be at least 6 characters.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Record store not found.")
		return
	}
	st := db.(*store.Store)

	actorID := userID.(string)
	if err := st.UpdateUserPassword(actorID, req.Password, actorID); err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}
