package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Configurer 需要解析和校验的配置
type Configurer interface {
	Parse() error
}

// LogConfig 日志配置
type LogConfig struct {
	Env        string `yaml:"env"`
	FileName   string `yaml:"file_name"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	NoCaller   bool   `yaml:"no_caller"`
	Level      string `yaml:"level"`
}

// Parse 使用配置初始化全局的logger
func (p *LogConfig) Parse() error {
	return initLogger(p)
}

// RuntimeConfig 运行期配置
type RuntimeConfig struct {
	Maxprocs int `yaml:"maxprocs"` //最大的PROCS个数
}

// Parse 设置GOMAXPROCS
func (p *RuntimeConfig) Parse() error {
	if p.Maxprocs > 0 {
		preProcs := runtime.GOMAXPROCS(p.Maxprocs)
		Infof("Set runtime.MAXPROCS to %v,old is %v", p.Maxprocs, preProcs)
	}
	return nil
}

// AppConfig 基础的应用配置,一般以inline的方式嵌入到应用的配置中
type AppConfig struct {
	*LogConfig     `yaml:"log"`
	*RuntimeConfig `yaml:"runtime"`
}

// Parse 依次解析日志和运行期配置
func (p *AppConfig) Parse() error {
	return ParseFields(p)
}

// ParseFields 依次调用conf中实现了Configurer的导出字段的Parse方法,nil指针字段会被跳过.
// 返回的错误中带有字段的yaml名称
func ParseFields(conf interface{}) error {
	config := reflect.Indirect(reflect.ValueOf(conf))
	if config.Kind() != reflect.Struct {
		return fmt.Errorf("can't parse fields of %T", conf)
	}

	for i := 0; i < config.NumField(); i++ {
		field := config.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		val := reflect.Indirect(config.Field(i))
		if !val.IsValid() || !val.CanAddr() {
			continue
		}
		configurer, ok := val.Addr().Interface().(Configurer)
		if !ok {
			continue
		}
		if err := configurer.Parse(); err != nil {
			name, inline := yamlName(field)
			if inline {
				return err
			}
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func yamlName(field reflect.StructField) (name string, inline bool) {
	parts := strings.Split(field.Tag.Get("yaml"), ",")
	for _, opt := range parts[1:] {
		if opt == "inline" {
			inline = true
		}
	}
	if parts[0] != "" {
		return parts[0], inline
	}
	return field.Name, inline
}

// ConfFileName 环境env对应的配置文件名
func ConfFileName(env string) string {
	return "conf_" + env + ".yaml"
}

// LoadYAML 将data中的YAML配置加载到target中,配置中存在target没有的字段时返回错误
func LoadYAML(data []byte, target interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadConfig 从dir目录加载环境env的配置文件到config,配置文件不存在时返回false,config保持不变
func LoadConfig(config interface{}, dir, env string) (loaded bool, err error) {
	confFile := filepath.Join(dir, ConfFileName(env))
	data, err := os.ReadFile(confFile)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	Infof("load conf from:%s", confFile)
	if err = LoadYAML(data, config); err != nil {
		return false, fmt.Errorf("load %s fail,err:%w", confFile, err)
	}
	return true, nil
}
