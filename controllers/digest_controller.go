package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/mohankrishna1703/Local-Food-Wastage-Management-System/services"

	"github.com/gin-gonic/gin"
)

type DigestController struct {
	Svc *services.DigestService
}

func NewDigestController(svc *services.DigestService) *DigestController {
	return &DigestController{Svc: svc}
}

// POST /digest/expiry?days=7 — mail the operator the listings expiring soon.
func (h *DigestController) SendExpiryDigest(c *gin.Context) {
	days, ok := intQuery(c, "days", 7)
	if !ok {
		return
	}

	to := c.Query("to")
	if to == "" {
		to = os.Getenv("OPERATOR_EMAIL")
	}
	if to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no recipient: set OPERATOR_EMAIL or pass ?to="})
		return
	}

	count, err := h.Svc.SendExpiryDigest(c.Request.Context(), to, time.Now(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings_in_digest": count})
}
