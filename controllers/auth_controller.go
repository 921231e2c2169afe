package controllers

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the single operator credential from the environment and
// hands back a bearer token for the write routes.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := os.Getenv("OPERATOR_USER")
	pass := os.Getenv("OPERATOR_PASSWORD")
	if user == "" || pass == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: operator credentials not set"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(pass)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := utils.GenerateJWT(input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
