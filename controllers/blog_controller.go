package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Geeky-har/My-Blog/config"
	"github.com/Geeky-har/My-Blog/models"
	"github.com/Geeky-har/My-Blog/utils"
)

// BlogController serves the public pages: post list, about, post detail and
// the contact form.
type BlogController struct {
	db       *gorm.DB
	cfg      config.AppConfig
	sendMail MailFunc
}

// NewBlogController creates a BlogController wired to the SMTP mailer.
func NewBlogController(db *gorm.DB, cfg config.AppConfig) *BlogController {
	return &BlogController{db: db, cfg: cfg, sendMail: utils.NewMailer(cfg).Send}
}

// SetMailFunc replaces the outbound mail delivery, used by tests.
func (b *BlogController) SetMailFunc(f MailFunc) {
	b.sendMail = f
}

// Home renders the paginated post list. The page query parameter is an
// arbitrary string; anything invalid falls back to page 1.
func (b *BlogController) Home(ctx *gin.Context) {
	var total int64
	if err := b.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		utils.Sugar.Errorf("count posts: %v", err)
		ctx.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	window := utils.Paginate(total, ctx.Query("page"), b.cfg.PostsPerPage)

	// Creation order with identifier tiebreak, matching the reading order of
	// the original site.
	var posts []models.Post
	if err := b.db.Order("created_at, id").
		Offset(window.Offset).Limit(window.Limit).
		Find(&posts).Error; err != nil {
		utils.Sugar.Errorf("list posts: %v", err)
		ctx.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Params": siteParams(b.cfg),
		"Posts":  posts,
		"Prev":   window.PrevURL,
		"Next":   window.NextURL,
		"Page":   window.Page,
	})
}

// About renders the static about page.
func (b *BlogController) About(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "about.html", gin.H{"Params": siteParams(b.cfg)})
}

// ShowPost renders a single post looked up by slug. A collision resolves to
// the first match; a miss renders the 404 page.
func (b *BlogController) ShowPost(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var post models.Post
	if err := b.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			renderNotFound(ctx, b.cfg)
			return
		}
		utils.Sugar.Errorf("load post %q: %v", slug, err)
		ctx.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	ctx.HTML(http.StatusOK, "post.html", gin.H{
		"Params": siteParams(b.cfg),
		"Post":   post,
	})
}

// ContactForm renders the contact form.
func (b *BlogController) ContactForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "contact.html", gin.H{"Params": siteParams(b.cfg)})
}

// ContactSubmit stores the submission, then mails the owner. The record is
// kept even when the notification fails; mail trouble surfaces as a warning
// to the submitter, never as a failed request.
func (b *BlogController) ContactSubmit(ctx *gin.Context) {
	name := strings.TrimSpace(utils.StripTags(ctx.PostForm("name")))
	email := strings.TrimSpace(utils.StripTags(ctx.PostForm("email")))
	phone := strings.TrimSpace(utils.StripTags(ctx.PostForm("phone")))
	message := strings.TrimSpace(utils.StripTags(ctx.PostForm("message")))

	if name == "" || email == "" || message == "" {
		ctx.HTML(http.StatusOK, "contact.html", gin.H{
			"Params": siteParams(b.cfg),
			"Notice": "Please fill in your name, email and message.",
		})
		return
	}

	entry := models.Contact{
		Name:    truncateRunes(name, 80),
		Phone:   truncateRunes(phone, 15),
		Message: truncateRunes(message, 80),
		Email:   truncateRunes(email, 25),
	}
	if err := b.db.Create(&entry).Error; err != nil {
		utils.Sugar.Errorf("store contact: %v", err)
		ctx.HTML(http.StatusInternalServerError, "contact.html", gin.H{
			"Params": siteParams(b.cfg),
			"Notice": "Something went wrong, please try again later.",
		})
		return
	}

	notice := "Thanks, your message has been sent."
	if err := b.sendMail(b.cfg.OwnerEmail, "New message from "+entry.Name, entry.Email, entry.Message+"\n"+entry.Phone); err != nil {
		utils.Sugar.Warnf("contact notification mail failed: %v", err)
		notice = "Your message was saved, but we could not notify the owner right away."
	}

	ctx.HTML(http.StatusOK, "contact.html", gin.H{
		"Params": siteParams(b.cfg),
		"Notice": notice,
	})
}
