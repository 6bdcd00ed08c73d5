package handler

import (
	"net/http"

	"paycheckout/internal/view"

	"github.com/gin-gonic/gin"
)

// Status renders the landing page the gateway sends the payer back to via
// return_url or cancel_url.
func Status(c *gin.Context) {
	c.HTML(http.StatusOK, view.StatusTemplate, view.NewStatusPage(c.Query("status")))
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
