package router

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/core/auth"
	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/internal/service"
	mdw "github.com/kairowan/gatehouse/internal/transport/http/middleware"
)

type APIDeps struct {
	Auth     *service.AuthService
	Authz    *service.AuthzService
	Profiles *service.ProfileService
	Records  domain.RecordRepository
	Files    *collab.FileStore
	JWTer    *auth.JWTer
}

func NewAPIEngine(l *zap.Logger, db *gorm.DB, d APIDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公共分组（无需登录）
	mountLogin(api, db, l, d)

	// 鉴权分组
	authed := api.Group("")
	authed.Use(mdw.RequireStandard(d.JWTer, d.Authz))
	mountSearch(authed, db, l, d)
	mountProfile(authed, db, l, d)
	mountUpload(authed, db, l, d)

	return r
}

func mountLogin(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d APIDeps) {
	type loginIn struct {
		Username string `json:"username" binding:"required,max=64"`
		Password string `json:"password" binding:"required,max=128"`
	}
	Register(g, db, l, Action[loginIn, service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *loginIn) (service.LoginResult, error) {
			return d.Auth.Authenticate(c.Request.Context(), in.Username, in.Password)
		},
	})
}

func mountSearch(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d APIDeps) {
	type searchQ struct {
		Term string `form:"term"`
	}
	type searchOut struct {
		Items []domain.Record `json:"items"`
	}
	Register(g, db, l, Action[searchQ, searchOut]{
		Method: http.MethodGet,
		Path:   "/search",
		Binder: BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *searchQ) (searchOut, error) {
			recs, err := d.Records.SearchByName(c.Request.Context(), in.Term)
			if err != nil {
				return searchOut{}, err
			}
			return searchOut{Items: recs}, nil
		},
	})
}

func mountProfile(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d APIDeps) {
	Register(g, db, l, Action[struct{}, domain.PublicProfile]{
		Method: http.MethodGet,
		Path:   "/profile/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (domain.PublicProfile, error) {
			return d.Profiles.Get(
				c.Request.Context(),
				c.Param("id"),
				c.GetString(mdw.KeyUserID),
				c.GetBool(mdw.KeyAdminToken),
			)
		},
	})
}

func mountUpload(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d APIDeps) {
	Register(g, db, l, Action[struct{}, collab.StoredFile]{
		Method: http.MethodPost,
		Path:   "/files",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (collab.StoredFile, error) {
			fh, err := c.FormFile("file")
			if err != nil {
				return collab.StoredFile{}, domain.Validation("missing file")
			}
			f, err := fh.Open()
			if err != nil {
				return collab.StoredFile{}, domain.Validation("unreadable file")
			}
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				return collab.StoredFile{}, domain.Internal("read upload failed", err)
			}
			return d.Files.Save(c.Request.Context(), data, fh.Filename)
		},
	})
}
