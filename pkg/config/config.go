package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvPrefix   = "ZOEYUIA_"
	EnvMaxDepth = EnvPrefix + "MAX_DEPTH"
	EnvFormat   = EnvPrefix + "FORMAT"
	EnvLogLevel = EnvPrefix + "LOG_LEVEL"
	EnvLogFile  = EnvPrefix + "LOG_FILE"
)

// InspectConfig 元素检查配置
type InspectConfig struct {
	// MaxDepth 导出元素树的最大深度
	MaxDepth int `json:"max_depth"`
	// Format 输出格式 json / yaml
	Format string `json:"format"`
	// LogLevel 日志级别
	LogLevel string `json:"log_level"`
	// LogFile 日志文件路径，为空时只输出到控制台
	LogFile string `json:"log_file"`
}

// DefaultInspectConfig 默认配置
func DefaultInspectConfig() *InspectConfig {
	return &InspectConfig{
		MaxDepth: 3,
		Format:   "json",
		LogLevel: "info",
		LogFile:  "",
	}
}

// Validate 检查配置取值
func (c *InspectConfig) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth 不能为负数: %d", c.MaxDepth)
	}
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("不支持的输出格式: %s", c.Format)
	}
	return nil
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".zoey-uia"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithFile 使用指定配置文件创建配置管理器
func NewManagerWithFile(configFile string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(configFile),
		configFile: configFile,
	}
}

func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件不存在时返回默认配置
func (m *Manager) Load() (*InspectConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.configFile)
	if os.IsNotExist(err) {
		return DefaultInspectConfig(), nil
	}
	if err != nil {
		return DefaultInspectConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 未出现的字段保持默认值
	config := DefaultInspectConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultInspectConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *InspectConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// LoadEnv 读取 .env 文件和进程环境变量中的 ZOEYUIA_* 项，进程环境变量优先
// dotenvPath 为空或文件不存在时只读取进程环境变量
func LoadEnv(dotenvPath string) (map[string]string, error) {
	env := make(map[string]string)

	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			values, err := godotenv.Read(dotenvPath)
			if err != nil {
				return nil, fmt.Errorf("解析 %s 失败: %w", dotenvPath, err)
			}
			for k, v := range values {
				if strings.HasPrefix(k, EnvPrefix) {
					env[k] = v
				}
			}
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	return env, nil
}

// ApplyEnv 使用环境变量覆盖配置
func ApplyEnv(config *InspectConfig, env map[string]string) error {
	if v, ok := env[EnvMaxDepth]; ok && v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s 不是整数: %q", EnvMaxDepth, v)
		}
		config.MaxDepth = depth
	}
	if v, ok := env[EnvFormat]; ok && v != "" {
		config.Format = strings.ToLower(v)
	}
	if v, ok := env[EnvLogLevel]; ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := env[EnvLogFile]; ok {
		config.LogFile = v
	}
	return nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*InspectConfig, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *InspectConfig) error {
	return defaultManager.Save(config)
}

// Clear 使用默认管理器清除配置
func Clear() error {
	return defaultManager.Clear()
}
