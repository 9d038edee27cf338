package ez

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"business-directory/internal/domain"
	resp "business-directory/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定；空 body 视为 {}
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 传输层错误（绑定失败等），Code 即 HTTP 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string, err error) error { return &AErr{Code: http.StatusBadRequest, Msg: msg, Err: err} }

// 动作定义：I 入参，O 出参（已是完整的响应体）
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/businesses/:id"
	Binder  Binder
	Status  int // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在分组下注册动作接口：绑定 -> 执行 -> 统一错误映射
func RegisterAction[I any, O any](g *gin.RouterGroup, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
			if errors.Is(bindErr, io.EOF) {
				bindErr = nil
			}
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			Fail(c, BadRequest(bindErr.Error(), bindErr))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}
	g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

// StatusOf 错误 -> (HTTP 状态码, 对外 message)
func StatusOf(err error) (int, string) {
	var (
		tooLarge *http.MaxBytesError
		ve       *domain.ValidationError
		nf       *domain.NotFoundError
		ae       *AErr
		se       *domain.StoreError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, resp.MsgBodyTooLarge
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.As(err, &ae):
		return ae.Code, ae.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, resp.MsgTimeout
	case errors.As(err, &se):
		return http.StatusInternalServerError, se.Cause()
	}
	return http.StatusInternalServerError, err.Error()
}

// Fail 写失败信封，并把错误挂到 gin.Context 供访问日志输出
func Fail(c *gin.Context, err error) {
	status, msg := StatusOf(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp.Error(msg))
}
