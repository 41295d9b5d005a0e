package counter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJSON 请求内容不是JSON对象
	ErrInvalidJSON = errors.New("Invalid JSON")
	// ErrCounterNameRequired 递增时counter_name为空
	ErrCounterNameRequired = errors.New("counter_name is required")
	// ErrCounterNotExist 计数器不存在
	ErrCounterNotExist = errors.New("Counter does not exist")
)

// UnknownActionError 不支持的action
type UnknownActionError struct {
	Action string
}

func (p *UnknownActionError) Error() string {
	return fmt.Sprintf("Invalid action: %s", p.Action)
}
