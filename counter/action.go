package counter

import "strings"

// Action 请求的操作
type Action int

// 支持的操作
const (
	ActionUnknown Action = iota
	// ActionIncr 递增计数器,计数器不存在时创建
	ActionIncr
	// ActionReset 将已存在的计数器置为0
	ActionReset
	// ActionGet 读取计数器的值
	ActionGet
)

var actionNames = map[Action]string{
	ActionIncr:  "counter",
	ActionReset: "reset",
	ActionGet:   "get",
}

var actionsByName = map[string]Action{
	"counter": ActionIncr,
	"reset":   ActionReset,
	"get":     ActionGet,
}

func (p Action) String() string {
	if name, ok := actionNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseAction 解析action,会去掉首尾的空白,无法识别的action返回ActionUnknown
func ParseAction(action string) Action {
	if a, ok := actionsByName[strings.TrimSpace(action)]; ok {
		return a
	}
	return ActionUnknown
}
