package controllers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Geeky-har/My-Blog/config"
	"github.com/Geeky-har/My-Blog/middleware"
	"github.com/Geeky-har/My-Blog/models"
	"github.com/Geeky-har/My-Blog/utils"
)

// DashboardController handles the admin side: login, post listing, the edit
// state machine, deletion and logout.
type DashboardController struct {
	db  *gorm.DB
	cfg config.AppConfig
}

// NewDashboardController creates a DashboardController instance.
func NewDashboardController(db *gorm.DB, cfg config.AppConfig) *DashboardController {
	return &DashboardController{db: db, cfg: cfg}
}

// Dashboard shows the post list for an authenticated admin and the login
// form for everyone else.
func (d *DashboardController) Dashboard(ctx *gin.Context) {
	if _, ok := middleware.CurrentAdmin(ctx, d.cfg); !ok {
		d.renderLogin(ctx, http.StatusOK, "")
		return
	}
	d.renderDashboard(ctx)
}

// Login verifies the configured admin credential. The username check is
// constant-time and the password check is bcrypt, with one uniform failure
// message so the response never reveals which part was wrong.
func (d *DashboardController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(d.cfg.AdminUsername)) == 1
	passOK := utils.CheckPassword(d.cfg.AdminPasswordHash, password)
	if !userOK || !passOK {
		d.renderLogin(ctx, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	ttl := time.Duration(d.cfg.SessionTTLHours) * time.Hour
	token, err := utils.GenerateSessionToken(d.cfg.SessionSecret, d.cfg.AdminUsername, ttl)
	if err != nil {
		utils.Sugar.Errorf("generate session token: %v", err)
		d.renderLogin(ctx, http.StatusInternalServerError, "Something went wrong, please try again.")
		return
	}

	ctx.SetCookie(middleware.SessionCookieName, token, int(ttl.Seconds()), "/", "", false, true)
	ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

// EditForm renders the edit view. Identifier 0 is the creation sentinel and
// shows a blank form.
func (d *DashboardController) EditForm(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 0 {
		renderNotFound(ctx, d.cfg)
		return
	}

	var post models.Post
	if id != 0 {
		if err := d.db.First(&post, id).Error; err != nil {
			renderNotFound(ctx, d.cfg)
			return
		}
	}

	ctx.HTML(http.StatusOK, "edit.html", gin.H{
		"Params": siteParams(d.cfg),
		"Post":   post,
	})
}

// SavePost runs the edit state machine: id 0 creates a post and redirects to
// the new post's edit view so the fresh identifier is surfaced; an existing
// id updates all mutable fields in place, keeping identifier and creation
// date, and redirects back to the same edit view.
func (d *DashboardController) SavePost(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 0 {
		renderNotFound(ctx, d.cfg)
		return
	}

	title := truncateRunes(strings.TrimSpace(utils.StripTags(ctx.PostForm("title"))), 80)
	subtitle := truncateRunes(strings.TrimSpace(utils.StripTags(ctx.PostForm("subtitle"))), 100)
	slug := truncateRunes(strings.TrimSpace(utils.StripTags(ctx.PostForm("slug"))), 15)
	content := truncateRunes(utils.Sanitize(ctx.PostForm("content")), 100)
	imgFile := truncateRunes(strings.TrimSpace(utils.StripTags(ctx.PostForm("img_file"))), 25)

	if title == "" || slug == "" {
		post := models.Post{Title: title, Subtitle: subtitle, Slug: slug, Content: content, ImgFile: imgFile}
		post.ID = uint(id)
		ctx.HTML(http.StatusOK, "edit.html", gin.H{
			"Params": siteParams(d.cfg),
			"Post":   post,
			"Notice": "Title and slug are required.",
		})
		return
	}

	if id == 0 {
		post := models.Post{Title: title, Subtitle: subtitle, Slug: slug, Content: content, ImgFile: imgFile}
		if err := d.db.Create(&post).Error; err != nil {
			utils.Sugar.Errorf("create post: %v", err)
			ctx.String(http.StatusInternalServerError, "something went wrong")
			return
		}
		ctx.Redirect(http.StatusSeeOther, "/edit/"+strconv.Itoa(int(post.ID)))
		return
	}

	var post models.Post
	if err := d.db.First(&post, id).Error; err != nil {
		renderNotFound(ctx, d.cfg)
		return
	}

	post.Title = title
	post.Subtitle = subtitle
	post.Slug = slug
	post.Content = content
	post.ImgFile = imgFile
	if err := d.db.Save(&post).Error; err != nil {
		utils.Sugar.Errorf("update post %d: %v", id, err)
		ctx.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/edit/"+strconv.Itoa(id))
}

// DeletePost removes a post and returns to the dashboard. Deleting an id
// that is already gone is not an error.
func (d *DashboardController) DeletePost(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		renderNotFound(ctx, d.cfg)
		return
	}

	if err := d.db.Delete(&models.Post{}, id).Error; err != nil {
		utils.Sugar.Errorf("delete post %d: %v", id, err)
		ctx.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout revokes the session token until its natural expiry and clears the
// cookie. A missing or invalid cookie is a no-op, never an error.
func (d *DashboardController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		expiresAt := time.Now().Add(time.Duration(d.cfg.SessionTTLHours) * time.Hour)
		if claims, err := utils.ParseSessionToken(d.cfg.SessionSecret, token); err == nil && claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}
		utils.RevokeSession(token, expiresAt)
	}

	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (d *DashboardController) renderLogin(ctx *gin.Context, status int, notice string) {
	ctx.HTML(status, "login.html", gin.H{
		"Params": siteParams(d.cfg),
		"Notice": notice,
	})
}

func (d *DashboardController) renderDashboard(ctx *gin.Context) {
	var posts []models.Post
	if err := d.db.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		utils.Sugar.Errorf("list posts for dashboard: %v", err)
		ctx.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	// Stats are best-effort; a failed count shows as zero instead of
	// failing the whole page.
	var contactCount int64
	if err := d.db.Model(&models.Contact{}).Count(&contactCount).Error; err != nil {
		contactCount = 0
	}
	var totalViews int64
	if err := d.db.Model(&models.PageView{}).
		Select("COALESCE(SUM(count),0)").
		Scan(&totalViews).Error; err != nil {
		totalViews = 0
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Params":       siteParams(d.cfg),
		"Posts":        posts,
		"PostCount":    len(posts),
		"ContactCount": contactCount,
		"TotalViews":   totalViews,
	})
}
