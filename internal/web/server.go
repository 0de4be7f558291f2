package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lingtools/elanstats/internal/cache"
	"github.com/lingtools/elanstats/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const localeCookie = "locale"

// Server is the dashboard HTTP layer. It performs no writes; every request
// reads (possibly cached) corpus views and formats them.
type Server struct {
	cfg    model.WebConfig
	views  cache.Cache
	engine *gin.Engine
}

// NewServer builds the dashboard server.
func NewServer(cfg model.WebConfig) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if !validLocale(cfg.DefaultLocale) {
		cfg.DefaultLocale = "ru"
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		cfg:    cfg,
		views:  cache.NewMemoryCache(cfg.CacheTTL, cfg.CacheTTL),
		engine: engine,
	}
	engine.GET("/", s.handleIndex)
	engine.GET("/set_locale/:lang", s.handleSetLocale)
	engine.GET("/api/corpora", s.handleAPICorpora)
	return s, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the dashboard until the listener fails.
func (s *Server) Run() error {
	return s.engine.Run(s.cfg.Listen)
}

// locale resolves the request locale: cookie first, then Accept-Language,
// then the configured default.
func (s *Server) locale(c *gin.Context) string {
	if locale, err := c.Cookie(localeCookie); err == nil && validLocale(locale) {
		return locale
	}
	return matchLocale(c.GetHeader("Accept-Language"), s.cfg.DefaultLocale)
}

// corpora returns the computed views for all configured corpora, reading
// each from the cache when warm.
func (s *Server) corpora() []*CorpusView {
	views := make([]*CorpusView, 0, len(s.cfg.Corpora))
	for _, entry := range s.cfg.Corpora {
		key := cache.Key(entry.StatsDir)
		if v, ok := s.views.Get(key); ok {
			views = append(views, v.(*CorpusView))
			continue
		}
		view := LoadCorpus(entry)
		s.views.Set(key, view, s.cfg.CacheTTL)
		views = append(views, view)
	}
	return views
}

func (s *Server) handleIndex(c *gin.Context) {
	locale := s.locale(c)
	c.HTML(http.StatusOK, "stats.html", gin.H{
		"Locale":  locale,
		"Locales": supportedLocales,
		"T":       translations[locale],
		"Corpora": s.corpora(),
	})
}

func (s *Server) handleSetLocale(c *gin.Context) {
	lang := c.Param("lang")
	if !validLocale(lang) {
		c.Status(http.StatusNotFound)
		return
	}
	c.SetCookie(localeCookie, lang, 0, "/", "", false, false)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleAPICorpora(c *gin.Context) {
	c.JSON(http.StatusOK, s.corpora())
}
