package http

import (
	"context"
	"net/http"
)

type key int

const (
	errorKey key = 0 // 处理错误的key
)

// RequestWithError 向req中设置当前处理的错误,返回新的request
func RequestWithError(req *http.Request, err error) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), errorKey, err))
}

// ErrorFromRequestContext 从req的context取得错误值
func ErrorFromRequestContext(req *http.Request) (error, bool) {
	err, ok := req.Context().Value(errorKey).(error)
	return err, ok
}
