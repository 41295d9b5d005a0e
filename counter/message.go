package counter

import (
	"bytes"
	"unicode/utf8"

	c "github.com/d0ngw/counterd/common"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Status 响应的状态
type Status string

// 响应状态
const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Request 请求
type Request struct {
	Action      string `json:"action"`
	CounterName string `json:"counter_name"`
}

// Response 响应,Count仅在成功时存在,CounterName在未知action的错误响应中不存在
type Response struct {
	Status      Status  `json:"status"`
	CounterName *string `json:"counter_name,omitempty"`
	Count       *int64  `json:"count,omitempty"`
	Message     string  `json:"message,omitempty"`
}

// Success 成功的响应
func Success(name string, count int64) *Response {
	return &Response{Status: StatusOK, CounterName: &name, Count: &count}
}

// Failure 带有counter_name的错误响应
func Failure(name string, message string) *Response {
	return &Response{Status: StatusError, CounterName: &name, Message: message}
}

// failureNoName 不带counter_name的错误响应
func failureNoName(message string) *Response {
	return &Response{Status: StatusError, Message: message}
}

// OK 是否成功
func (p *Response) OK() bool {
	return p.Status == StatusOK
}

// Name 返回counter_name,不存在时返回空字符串
func (p *Response) Name() string {
	if p.CounterName == nil {
		return ""
	}
	return *p.CounterName
}

// DecodeRequest 将payload解析为Request,payload必须是UTF-8编码的JSON对象,否则返回ErrInvalidJSON.
// 缺少的字段按空字符串处理
func DecodeRequest(payload []byte) (*Request, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidJSON
	}
	// 非法的UTF-8会被替换为U+FFFD,不同的名称会落到同一个计数器上
	if !utf8.Valid(trimmed) {
		return nil, ErrInvalidJSON
	}
	req := &Request{}
	if err := json.Unmarshal(trimmed, req); err != nil {
		c.Debugf("decode request fail,err:%s", err)
		return nil, ErrInvalidJSON
	}
	return req, nil
}

// EncodeRequest 将req编码为JSON
func EncodeRequest(req *Request) ([]byte, error) {
	return json.Marshal(req)
}

// EncodeResponse 将resp编码为JSON
func EncodeResponse(resp *Response) ([]byte, error) {
	return json.Marshal(resp)
}

// invalidJSONReply 无法解析的请求的响应,是一个JSON字符串而不是对象
var invalidJSONReply = mustMarshal(ErrInvalidJSON.Error())

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// InvalidJSONReply 返回无法解析的请求对应的响应
func InvalidJSONReply() []byte {
	reply := make([]byte, len(invalidJSONReply))
	copy(reply, invalidJSONReply)
	return reply
}

// DecodeReply 解析服务端的响应,当响应为"Invalid JSON"字符串时返回ErrInvalidJSON
func DecodeReply(reply []byte) (*Response, error) {
	if bytes.Equal(bytes.TrimSpace(reply), invalidJSONReply) {
		return nil, ErrInvalidJSON
	}
	resp := &Response{}
	if err := json.Unmarshal(reply, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
