// Package flash stores transient user-facing messages in the session. A
// message set during one request is returned and cleared by the next page
// that asks for it.
package flash

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Add queues a message for the next page view.
func Add(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	// A save error leaves the message undelivered; the redirect still happens.
	_ = session.Save()
}

// Take returns and clears the queued messages.
func Take(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save()
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
