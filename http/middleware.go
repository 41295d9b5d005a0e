package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	c "github.com/d0ngw/counterd/common"
)

// Middleware 在处理函数之前执行的过滤操作
type Middleware interface {
	// Handle 包装next,返回新的处理函数
	Handle(next http.HandlerFunc) http.HandlerFunc
}

// MiddlewareFunc 将函数适配为Middleware
type MiddlewareFunc func(next http.HandlerFunc) http.HandlerFunc

// Handle implements Middleware.Handle
func (f MiddlewareFunc) Handle(next http.HandlerFunc) http.HandlerFunc {
	return f(next)
}

type handlerWithMiddleware struct {
	handlerFunc http.HandlerFunc
	middlewares []Middleware
}

// AccessLog 以debug级别记录每个请求的处理时间
var AccessLog = MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		if c.LogEnabled(c.Debug) {
			c.Debugf("%s %s from %s,%s", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
		}
	}
})

// AllowMethods 只允许methods中的请求方法,其余的请求返回405并在context中设置错误,后续的处理函数不会被调用
func AllowMethods(methods ...string) Middleware {
	allowed := strings.Join(methods, ", ")
	return MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			for _, m := range methods {
				if r.Method == m {
					next(w, r)
					return
				}
			}
			w.Header().Set("Allow", allowed)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			next(w, RequestWithError(r, fmt.Errorf("method %s not allowed", r.Method)))
		}
	})
}
