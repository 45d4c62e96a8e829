package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultInspectConfig(t *testing.T) {
	config := DefaultInspectConfig()

	if config.MaxDepth != 3 {
		t.Errorf("默认 MaxDepth 应为 3, 实际为 %d", config.MaxDepth)
	}
	if config.Format != "json" {
		t.Errorf("默认 Format 应为 json, 实际为 %s", config.Format)
	}
	if config.LogLevel != "info" {
		t.Errorf("默认 LogLevel 应为 info, 实际为 %s", config.LogLevel)
	}
	if config.LogFile != "" {
		t.Error("默认 LogFile 应为空")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("默认配置应通过校验: %v", err)
	}

	t.Logf("默认配置: %+v", config)
}

func TestValidate(t *testing.T) {
	config := DefaultInspectConfig()
	config.MaxDepth = -1
	if err := config.Validate(); err == nil {
		t.Error("负数深度应校验失败")
	}

	config = DefaultInspectConfig()
	config.Format = "xml"
	if err := config.Validate(); err == nil {
		t.Error("不支持的格式应校验失败")
	}

	config.Format = "yaml"
	if err := config.Validate(); err != nil {
		t.Errorf("yaml 格式应通过校验: %v", err)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	config := &InspectConfig{
		MaxDepth: 7,
		Format:   "yaml",
		LogLevel: "debug",
		LogFile:  filepath.Join(tempDir, "uia.log"),
	}

	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if *loaded != *config {
		t.Errorf("配置不匹配: 期望 %+v, 实际 %+v", config, loaded)
	}

	t.Logf("加载的配置: %+v", loaded)
}

func TestManagerLoadPartial(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 只写入部分字段，其余字段保持默认
	if err := os.WriteFile(manager.GetConfigFile(), []byte(`{"max_depth": 10}`), 0600); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if config.MaxDepth != 10 {
		t.Errorf("MaxDepth 应为 10, 实际为 %d", config.MaxDepth)
	}
	if config.Format != "json" {
		t.Errorf("未设置的 Format 应为默认值 json, 实际为 %s", config.Format)
	}
}

func TestManagerClear(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if err := manager.Save(DefaultInspectConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Fatal("保存后配置文件应存在")
	}

	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}

	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 清除不存在的文件不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("清除不存在的配置不应报错: %v", err)
	}
}

func TestManagerLoadNonExistent(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("加载不存在的配置不应报错: %v", err)
	}

	if *config != *DefaultInspectConfig() {
		t.Errorf("应返回默认配置, 实际为 %+v", config)
	}
}

func TestManagerLoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	configFile := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(configFile, []byte("not valid json"), 0600); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	config, err := manager.Load()
	if err == nil {
		t.Error("加载损坏的配置应返回错误")
	}

	if config == nil {
		t.Error("即使出错也应返回默认配置")
	}

	t.Logf("加载损坏配置的错误: %v", err)
}

func TestManagerPaths(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.GetConfigDir() != tempDir {
		t.Errorf("GetConfigDir 应为 %s", tempDir)
	}

	expectedFile := filepath.Join(tempDir, "config.json")
	if manager.GetConfigFile() != expectedFile {
		t.Errorf("GetConfigFile 应为 %s", expectedFile)
	}

	custom := filepath.Join(tempDir, "nested", "inspect.json")
	manager = NewManagerWithFile(custom)
	if manager.GetConfigFile() != custom {
		t.Errorf("GetConfigFile 应为 %s", custom)
	}
	if manager.GetConfigDir() != filepath.Dir(custom) {
		t.Errorf("GetConfigDir 应为 %s", filepath.Dir(custom))
	}
	if err := manager.Save(DefaultInspectConfig()); err != nil {
		t.Errorf("应自动创建配置目录: %v", err)
	}
}

func TestDefaultManager(t *testing.T) {
	manager := GetDefaultManager()
	if manager == nil {
		t.Fatal("GetDefaultManager 返回 nil")
	}

	homeDir, _ := os.UserHomeDir()
	expectedDir := filepath.Join(homeDir, ".zoey-uia")

	if manager.GetConfigDir() != expectedDir {
		t.Errorf("默认配置目录应为 %s, 实际为 %s", expectedDir, manager.GetConfigDir())
	}
}

func TestLoadEnv(t *testing.T) {
	dotenv := filepath.Join(t.TempDir(), ".env")
	content := "ZOEYUIA_MAX_DEPTH=5\nZOEYUIA_FORMAT=yaml\nOTHER_VAR=ignored\n"
	if err := os.WriteFile(dotenv, []byte(content), 0600); err != nil {
		t.Fatalf("创建 .env 失败: %v", err)
	}

	// 进程环境变量优先于 .env
	t.Setenv(EnvFormat, "json")

	env, err := LoadEnv(dotenv)
	if err != nil {
		t.Fatalf("LoadEnv 失败: %v", err)
	}
	if env[EnvMaxDepth] != "5" {
		t.Errorf("%s 应为 5, 实际为 %q", EnvMaxDepth, env[EnvMaxDepth])
	}
	if env[EnvFormat] != "json" {
		t.Errorf("%s 应被进程环境变量覆盖为 json, 实际为 %q", EnvFormat, env[EnvFormat])
	}
	if _, ok := env["OTHER_VAR"]; ok {
		t.Error("不应读取非 ZOEYUIA_ 前缀的变量")
	}

	// 文件不存在时不报错
	if _, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf(".env 不存在时不应报错: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	config := DefaultInspectConfig()
	err := ApplyEnv(config, map[string]string{
		EnvMaxDepth: "8",
		EnvFormat:   "YAML",
		EnvLogLevel: "debug",
		EnvLogFile:  "/tmp/uia.log",
	})
	if err != nil {
		t.Fatalf("ApplyEnv 失败: %v", err)
	}

	if config.MaxDepth != 8 || config.Format != "yaml" || config.LogLevel != "debug" || config.LogFile != "/tmp/uia.log" {
		t.Errorf("环境变量未正确覆盖: %+v", config)
	}

	if err := ApplyEnv(config, map[string]string{EnvMaxDepth: "deep"}); err == nil {
		t.Error("非整数深度应返回错误")
	}
}

// BenchmarkSaveLoad 基准测试
func BenchmarkSaveLoad(b *testing.B) {
	manager := NewManagerWithDir(b.TempDir())
	config := DefaultInspectConfig()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		manager.Save(config)
		manager.Load()
	}
}
