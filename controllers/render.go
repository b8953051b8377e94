package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Geeky-har/My-Blog/config"
)

// MailFunc sends a notification mail. Injectable so tests can observe
// deliveries without an SMTP server.
type MailFunc func(to, subject, replyTo, body string) error

// siteParams exposes blog presentation settings to every template.
func siteParams(cfg config.AppConfig) gin.H {
	return gin.H{
		"Title":   cfg.BlogTitle,
		"Tagline": cfg.BlogTagline,
		"About":   cfg.AboutText,
	}
}

func renderNotFound(ctx *gin.Context, cfg config.AppConfig) {
	ctx.HTML(404, "404.html", gin.H{"Params": siteParams(cfg)})
}

// truncateRunes clips a string to at most n runes, matching column limits
// without splitting multi-byte characters.
func truncateRunes(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
