package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/domain"
	mdw "github.com/kairowan/gatehouse/internal/transport/http/middleware"
	resp "github.com/kairowan/gatehouse/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / form 取
)

// Action 定义一次入站调用：结构校验 → 执行 → 统一出参/错误映射。
// I 入参，O 出参。
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	UseTx   bool // 是否包事务（gorm.Transaction）
	Handler func(c *gin.Context, tx *gorm.DB, in *I) (O, error)
}

// Register mounts the action. Malformed input short-circuits before the
// handler runs; every error is mapped to a fixed envelope and the cause goes
// to the log only.
func Register[I any, O any](g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 结构校验
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			l.Debug("bind rejected",
				zap.String("rid", c.GetString(mdw.KeyRequestID)),
				zap.String("path", a.Path),
				zap.Error(bindErr),
			)
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "malformed request"))
			return
		}

		// 2) 执行（可选事务）
		run := func(tx *gorm.DB) (O, error) { return a.Handler(c, tx, &in) }
		var out O
		var err error
		if a.UseTx {
			err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
				o, e := run(tx)
				out = o
				return e
			})
		} else {
			out, err = run(db.WithContext(c.Request.Context()))
		}

		// 3) 统一错误映射
		if err != nil {
			writeError(c, l, a.Path, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default: // 默认 POST
		g.POST(a.Path, h)
	}
}

// writeError keeps the outward body generic. Only fixed policy messages from
// tagged errors are shown; internal detail is logged with the request id.
func writeError(c *gin.Context, l *zap.Logger, path string, err error) {
	kind := domain.KindOf(err)
	code := resp.CodeForKind(kind)

	msg := ""
	var de *domain.Error
	if errors.As(err, &de) && kind != domain.KindInternal {
		msg = de.Msg
	}

	if kind == domain.KindInternal || kind == domain.KindExternal {
		l.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	c.JSON(http.StatusOK, resp.Error(code, msg))
}
