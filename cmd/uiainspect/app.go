package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/zoeyai/zoeyuia/internal/logger"
	"github.com/zoeyai/zoeyuia/pkg/config"
	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/window"
)

const settingsKey = "settings"

// newProvider 测试中替换为假实现
var newProvider = uia.NewProvider

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "配置文件路径 (默认 ~/.zoey-uia/config.json)",
	},
	&cli.StringFlag{
		Name:  "env-file",
		Usage: "读取 ZOEYUIA_* 变量的 .env 文件",
		Value: ".env",
	},
	&cli.StringFlag{
		Name:  "log-level",
		Usage: "日志级别 (debug, info, warn, error)",
	},
	&cli.StringFlag{
		Name:  "log-file",
		Usage: "日志文件路径",
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "输出调试日志 (等同 --log-level debug)",
	},
}

// targetFlags 选择起始元素的参数，均未指定时从桌面根元素开始
var targetFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "handle",
		Usage: "窗口句柄 (十进制或 0x 十六进制)",
	},
	&cli.StringFlag{
		Name:    "title",
		Aliases: []string{"t"},
		Usage:   "按标题或进程名匹配顶层窗口",
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "uiainspect",
		Usage:   "查看 Windows UI Automation 元素树",
		Version: fmt.Sprintf("%s (build %s, commit %s)", Version, BuildTime, GitCommit),
		Description: `Examples:
  uiainspect windows notepad
  uiainspect dump --title notepad --depth 5 --format yaml
  uiainspect find --handle 0x1A2B --automation-id 15
  uiainspect capture --title notepad --out notepad.png`,
		Flags: globalFlags,
		Commands: []*cli.Command{
			windowsCommand,
			dumpCommand,
			findCommand,
			infoCommand,
			textCommand,
			captureCommand,
		},
		Before: setup,
		After: func(c *cli.Context) error {
			return logger.Default().Close()
		},
	}
}

// setup 合并配置：配置文件 < 环境变量 (.env) < 命令行参数
func setup(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}

	log := logger.Default()
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := log.SetFile(cfg.LogFile); err != nil {
			return err
		}
	}

	c.App.Metadata = map[string]interface{}{settingsKey: cfg}
	log.Debug("配置: %+v", *cfg)
	return nil
}

func loadSettings(c *cli.Context) (*config.InspectConfig, error) {
	manager := config.GetDefaultManager()
	if path := c.String("config"); path != "" {
		manager = config.NewManagerWithFile(path)
	}

	cfg, err := manager.Load()
	if err != nil {
		return nil, err
	}

	env, err := config.LoadEnv(c.String("env-file"))
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, env); err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func settings(c *cli.Context) *config.InspectConfig {
	if cfg, ok := c.App.Metadata[settingsKey].(*config.InspectConfig); ok {
		return cfg
	}
	return config.DefaultInspectConfig()
}

// outputFormat 命令参数优先于配置
func outputFormat(c *cli.Context) (string, error) {
	if !c.IsSet("format") {
		return settings(c).Format, nil
	}
	format := strings.ToLower(c.String("format"))
	if format != "json" && format != "yaml" {
		return "", fmt.Errorf("不支持的输出格式: %s", format)
	}
	return format, nil
}

func maxDepth(c *cli.Context) int {
	if c.IsSet("depth") {
		return c.Int("depth")
	}
	return settings(c).MaxDepth
}

func parseHandle(s string) (uintptr, error) {
	h, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("无效的窗口句柄 %q: %w", s, err)
	}
	return uintptr(h), nil
}

// resolveHandle 返回 --handle 或 --title 指定的窗口句柄，均未指定时返回 0
func resolveHandle(c *cli.Context) (uintptr, error) {
	if s := c.String("handle"); s != "" {
		return parseHandle(s)
	}
	if title := c.String("title"); title != "" {
		w, err := window.GetWindowByTitle(title)
		if err != nil {
			return 0, err
		}
		logger.Debug("匹配窗口: 0x%X %q (%s)", w.Handle, w.Title, w.OwnerName)
		if w.Handle == 0 {
			return 0, fmt.Errorf("窗口 %q 没有原生句柄", w.Title)
		}
		return w.Handle, nil
	}
	return 0, nil
}

// openElement 打开命令的起始元素
func openElement(c *cli.Context) (*uia.ElementInfo, error) {
	hwnd, err := resolveHandle(c)
	if err != nil {
		return nil, err
	}

	p, err := newProvider()
	if err != nil {
		if errors.Is(err, uia.ErrUnsupported) {
			return nil, fmt.Errorf("当前平台不支持 UI Automation: %w", err)
		}
		return nil, err
	}

	opts := []uia.Option{uia.WithDiagnostics(logger.Default().Degraded)}
	if hwnd == 0 {
		return uia.Root(p, opts...)
	}
	return uia.FromHandle(p, hwnd, opts...)
}
