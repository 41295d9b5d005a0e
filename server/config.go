// Package server 组装计数服务的各个组件
package server

import (
	"os"

	c "github.com/d0ngw/counterd/common"
	chttp "github.com/d0ngw/counterd/http"
	"github.com/d0ngw/counterd/rep"
)

// EnvConfDir 配置目录的环境变量
const EnvConfDir = "COUNTERD_CONF_DIR"

// Config 计数服务的配置
type Config struct {
	c.AppConfig `yaml:",inline"`
	Rep         *rep.Config   `yaml:"rep"`
	HTTP        *chttp.Config `yaml:"http"`
}

// NewConfig 默认配置,REP监听rep.DefaultEndpoint,不启动http
func NewConfig() *Config {
	return &Config{
		Rep:  &rep.Config{Endpoint: rep.DefaultEndpoint},
		HTTP: &chttp.Config{},
	}
}

// Parse implements common.Configurer
func (p *Config) Parse() error {
	if p.Rep == nil {
		p.Rep = &rep.Config{}
	}
	if p.HTTP == nil {
		p.HTTP = &chttp.Config{}
	}
	return c.ParseFields(p)
}

// LoadConfig 从confDir目录下加载conf_<env>.yaml,文件不存在时使用默认配置
func LoadConfig(confDir, env string) (*Config, error) {
	if confDir == "" {
		confDir = os.Getenv(EnvConfDir)
	}
	if confDir == "" {
		confDir = "conf"
	}
	if env == "" {
		env = "dev"
	}

	config := NewConfig()
	loaded, err := c.LoadConfig(config, confDir, env)
	if err != nil {
		return nil, err
	}
	if !loaded {
		c.Infof("config %s does not exist in %s,use default", c.ConfFileName(env), confDir)
	}
	if err = config.Parse(); err != nil {
		return nil, err
	}
	return config, nil
}
