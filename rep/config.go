// Package rep 使用ZeroMQ的REP socket提供计数服务,请求和响应严格交替
package rep

import (
	"fmt"
	"strings"
)

// DefaultEndpoint 默认的监听地址
const DefaultEndpoint = "tcp://*:5558"

// Config REP服务配置
type Config struct {
	Endpoint string `yaml:"endpoint"` //监听地址,如tcp://*:5558
}

// NewConfig 创建配置,在Parse时校验,endpoint为空时使用DefaultEndpoint
func NewConfig(endpoint string) *Config {
	return &Config{Endpoint: endpoint}
}

// Parse implements common.Configurer
func (p *Config) Parse() error {
	p.Endpoint = strings.TrimSpace(p.Endpoint)
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}
	if !strings.Contains(p.Endpoint, "://") {
		return fmt.Errorf("invalid endpoint %q,expect transport://address", p.Endpoint)
	}
	return nil
}
