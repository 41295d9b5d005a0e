package http

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"unicode"

	"github.com/d0ngw/counterd/counter"
)

// Controller 接口定义http处理器
type Controller interface {
	// GetName 控制器的名称
	GetName() string
	// GetPath 路径前缀,同一个控制器下的处理函数都注册在这个前缀下
	GetPath() string
}

// BaseController 表示一个控制器
type BaseController struct {
	Name string // Controller的名称
	Path string // Controller的路径
}

// GetName implements Controller.GetName
func (p *BaseController) GetName() string {
	return p.Name
}

// GetPath implements Controller.GetPath
func (p *BaseController) GetPath() string {
	return p.Path
}

var handlerFuncType = reflect.TypeOf(http.HandlerFunc(nil))

// ReflectHandlers 查找controller中类型为http.HandlerFunc的可导出方法,并将驼峰命名改为下划线分隔的路径
// 例如Index -> index,GetUser -> get_user
func ReflectHandlers(controller Controller) (handlers map[string]http.HandlerFunc, err error) {
	val := reflect.ValueOf(controller)
	if !val.IsValid() || val.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("controller must be a valid pointer")
	}

	handlers = map[string]http.HandlerFunc{}
	controllerType := val.Type()
	for i := 0; i < val.NumMethod(); i++ {
		methodVal := val.Method(i)
		if methodVal.Type().AssignableTo(handlerFuncType) {
			method := controllerType.Method(i)
			handlers[ToUnderlineName(method.Name)] = methodVal.Interface().(func(http.ResponseWriter, *http.Request))
		}
	}
	return handlers, nil
}

// ToUnderlineName 将驼峰命名改为小写的下划线命名
func ToUnderlineName(camelName string) string {
	nameRune := []rune(camelName)
	normalizeName := make([]rune, 0, len(nameRune))

	for ni := 0; ni < len(nameRune); ni++ {
		if ni != 0 && unicode.IsUpper(nameRune[ni]) && unicode.IsLower(nameRune[ni-1]) {
			normalizeName = append(normalizeName, '_')
		}
		normalizeName = append(normalizeName, unicode.ToLower(nameRune[ni]))
	}
	return string(normalizeName)
}

// 请求体的最大长度
const maxPayloadSize = 1 << 20

// CounterController 通过http处理计数请求,请求体和响应与REP socket上的消息相同
type CounterController struct {
	BaseController
	Router *counter.Router
}

// NewCounterController 创建注册在/counter下的控制器
func NewCounterController(router *counter.Router) *CounterController {
	return &CounterController{
		BaseController: BaseController{Name: "counter", Path: "/counter"},
		Router:         router,
	}
}

// Handle 处理POST /counter/handle
func (p *CounterController) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	reply := p.Router.HandlePayload(payload)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(reply)
}
