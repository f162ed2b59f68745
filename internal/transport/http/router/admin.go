package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/collab"
	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/internal/query"
	"github.com/kairowan/gatehouse/internal/service"
	mdw "github.com/kairowan/gatehouse/internal/transport/http/middleware"
)

type AdminDeps struct {
	Authz    *service.AuthzService
	Users    domain.UserRepository
	Exporter *service.Exporter
	Relay    *service.Relay
	Backup   *collab.BackupRunner
	Mailer   collab.Mailer
	Audit    collab.AuditLog
}

func NewAdminEngine(l *zap.Logger, db *gorm.DB, d AdminDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		ginzap.Ginzap(l, time.RFC3339, true),
		cors.Default(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 管理端 v1（统一要求 token 表中的 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.RequireAdmin(d.Authz))

	mountAdminUsers(admin, db, l, d)
	mountAdminRelay(admin, db, l, d)
	mountAdminExport(admin, db, l, d)
	mountAdminBackup(admin, db, l, d)
	mountAdminNotify(admin, db, l, d)

	return r
}

func mountAdminUsers(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d AdminDeps) {
	type listQ struct {
		Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
		Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	}
	type listOut struct {
		Total int64                  `json:"total"`
		Items []domain.PublicProfile `json:"items"`
	}
	Register(g, db, l, Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *listQ) (listOut, error) {
			users, total, err := d.Users.List(c.Request.Context(), in.Offset, in.Limit)
			if err != nil {
				return listOut{}, err
			}
			out := listOut{Total: total, Items: make([]domain.PublicProfile, 0, len(users))}
			for i := range users {
				// 管理端列表同样只走白名单投影
				out.Items = append(out.Items, domain.ProjectPublic(&users[i]))
			}
			return out, nil
		},
	})

	Register(g, db, l, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			id, err := query.ParseProfileID(c.Param("id"))
			if err != nil {
				return nil, err
			}
			if err := d.Users.SoftDelete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			d.Audit.Record(collab.AuditEvent{Actor: "admin-token", Action: "user.ban", Outcome: c.Param("id")})
			return gin.H{"id": id}, nil
		},
	})
}

func mountAdminRelay(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d AdminDeps) {
	type relayIn struct {
		Target string `json:"target" binding:"required,max=64"`
	}
	Register(g, db, l, Action[relayIn, service.RelayResult]{
		Method: http.MethodPost,
		Path:   "/relay",
		Binder: BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *relayIn) (service.RelayResult, error) {
			return d.Relay.Do(c.Request.Context(), in.Target)
		},
	})
}

func mountAdminExport(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d AdminDeps) {
	type exportIn struct {
		Report string `json:"report" binding:"required,max=64"`
		Format string `json:"format" binding:"omitempty,oneof=json csv"`
	}
	Register(g, db, l, Action[exportIn, service.ExportResult]{
		Method: http.MethodPost,
		Path:   "/export",
		Binder: BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *exportIn) (service.ExportResult, error) {
			return d.Exporter.Export(c.Request.Context(), in.Report, in.Format)
		},
	})
}

func mountAdminBackup(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d AdminDeps) {
	Register(g, db, l, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/backup",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			name, err := d.Backup.Run(c.Request.Context())
			outcome := "success"
			if err != nil {
				outcome = "failure"
			}
			d.Audit.Record(collab.AuditEvent{Actor: "admin-token", Action: "backup", Outcome: outcome})
			if err != nil {
				return nil, err
			}
			return gin.H{"name": name}, nil
		},
	})
}

func mountAdminNotify(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, d AdminDeps) {
	type notifyIn struct {
		To      string `json:"to" binding:"required,email,max=255"`
		Subject string `json:"subject" binding:"required,max=255"`
		Body    string `json:"body" binding:"required,max=65536"`
	}
	Register(g, db, l, Action[notifyIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/notify",
		Binder: BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *notifyIn) (gin.H, error) {
			if err := d.Mailer.Send(c.Request.Context(), in.To, in.Subject, in.Body); err != nil {
				return nil, err
			}
			return gin.H{"queued": true}, nil
		},
	})
}
