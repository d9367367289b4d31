package ez

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"padel-ranking-api/internal/domain"
	mdw "padel-ranking-api/internal/transport/http/middleware"
	resp "padel-ranking-api/internal/transport/http/response"
)

// EZ 路由分组的轻封装，负责绑定入参、统一错误映射与响应信封
type EZ struct {
	g          *gin.RouterGroup
	log        *zap.Logger
	production bool // true 时 500 不回显内部错误
}

func New(g *gin.RouterGroup, l *zap.Logger, production bool) EZ {
	return EZ{g: g, log: l, production: production}
}

// Group 派生子分组，沿用 logger 与环境
func (e EZ) Group(path string, mw ...gin.HandlerFunc) EZ {
	return EZ{g: e.g.Group(path, mw...), log: e.log, production: e.production}
}

// 绑定方式
type Binder string

const (
	BindJSON    Binder = "json"     // 从 JSON 绑定
	BindQuery   Binder = "query"    // 从 URL ?a=b 绑定
	BindURI     Binder = "uri"      // 从路径参数 :id 绑定
	BindURIJSON Binder = "uri+json" // 先路径参数再 JSON
	BindNone    Binder = "none"     // 不绑定
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string // 例："/auth/login"、"/matches/:id"
	Binder  Binder // 绑定方式
	Status  int    // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				resp.Abort(c, resp.CodeTooLarge, "request body too large")
				return
			}
			resp.Abort(c, resp.CodeBadRequest, err.Error())
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		c.JSON(status, resp.Success(status, out))
	}

	method := strings.ToUpper(a.Method)
	if method == "" {
		method = http.MethodPost
	}
	e.g.Handle(method, a.Path, h)
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		return bindJSON(c, in)
	case BindQuery:
		return c.ShouldBindQuery(in)
	case BindURI:
		return c.ShouldBindUri(in)
	case BindURIJSON:
		if err := c.ShouldBindUri(in); err != nil {
			return err
		}
		return bindJSON(c, in)
	default: // BindNone: 不绑定
		return nil
	}
}

// bindJSON 空 body 视为空对象，交给业务层给出具体的校验信息
func bindJSON(c *gin.Context, in any) error {
	err := c.ShouldBindJSON(in)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(in)
	}
	return err
}

// fail 按错误类别映射状态码
func (e EZ) fail(c *gin.Context, err error) {
	var code int
	msg := err.Error()
	switch domain.KindOf(err) {
	case domain.KindValidation:
		code = resp.CodeBadRequest
	case domain.KindUnauthorized:
		code = resp.CodeUnauthorized
	case domain.KindNotFound:
		code = resp.CodeNotFound
	default:
		code = resp.CodeServerError
		e.log.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		if e.production {
			msg = ""
		}
	}
	resp.Abort(c, code, msg)
}
