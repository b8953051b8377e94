package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Geeky-har/My-Blog/config"
	"github.com/Geeky-har/My-Blog/middleware"
	"github.com/Geeky-har/My-Blog/models"
	"github.com/Geeky-har/My-Blog/utils"
)

// adminPasswordHash is the bcrypt hash used by every test config; the
// matching plaintext is "s3cret".
var adminPasswordHash string

func init() {
	var err error
	adminPasswordHash, err = utils.HashPassword("s3cret")
	if err != nil {
		panic(err)
	}
}

func testAppConfig() config.AppConfig {
	return config.AppConfig{
		BlogTitle:         "Test Blog",
		BlogTagline:       "testing",
		AboutText:         "about text",
		AdminUsername:     "harsh",
		AdminPasswordHash: adminPasswordHash,
		SessionSecret:     "test-secret",
		SessionTTLHours:   1,
		PostsPerPage:      3,
		OwnerEmail:        "owner@example.com",
	}
}

// testDB opens a private in-memory SQLite database per test. The name keeps
// connections from the pool attached to the same database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Post{}, &models.Contact{}, &models.PageView{}))
	return db
}

// testRouter mirrors the production route table without rate limiting so
// tests can hammer the login endpoint.
func testRouter(db *gorm.DB, cfg config.AppConfig, mail MailFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")

	blog := NewBlogController(db, cfg)
	if mail != nil {
		blog.SetMailFunc(mail)
	}
	dashboard := NewDashboardController(db, cfg)

	r.GET("/", blog.Home)
	r.GET("/about", blog.About)
	r.GET("/post/:slug", blog.ShowPost)
	r.GET("/contact", blog.ContactForm)
	r.POST("/contact", blog.ContactSubmit)

	r.GET("/dashboard", dashboard.Dashboard)
	r.POST("/dashboard", dashboard.Login)
	r.GET("/logout", dashboard.Logout)

	admin := r.Group("")
	admin.Use(middleware.AdminRequired(cfg))
	admin.GET("/edit/:id", dashboard.EditForm)
	admin.POST("/edit/:id", dashboard.SavePost)
	admin.GET("/delete/:id", dashboard.DeletePost)
	admin.POST("/delete/:id", dashboard.DeletePost)

	return r
}

type sentMail struct {
	to, subject, replyTo, body string
}

// testFixture bundles the database, route table and a recording mailer.
type testFixture struct {
	db      *gorm.DB
	cfg     config.AppConfig
	router  *gin.Engine
	sent    []sentMail
	mailErr error
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{db: testDB(t), cfg: testAppConfig()}
	f.router = testRouter(f.db, f.cfg, func(to, subject, replyTo, body string) error {
		if f.mailErr != nil {
			return f.mailErr
		}
		f.sent = append(f.sent, sentMail{to: to, subject: subject, replyTo: replyTo, body: body})
		return nil
	})
	return f
}

func doGet(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func doPostForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

// loginAs performs a login round trip and returns the session cookie.
func loginAs(t *testing.T, r http.Handler, username, password string) *http.Cookie {
	t.Helper()
	res := doPostForm(r, "/dashboard", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, res.Code)

	for _, c := range res.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func sessionCookies(res *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range res.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			out = append(out, c)
		}
	}
	return out
}
