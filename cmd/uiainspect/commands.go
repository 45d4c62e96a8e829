package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/zoeyai/zoeyuia/internal/logger"
	"github.com/zoeyai/zoeyuia/pkg/handleprops"
	"github.com/zoeyai/zoeyuia/pkg/inspect"
	"github.com/zoeyai/zoeyuia/pkg/process"
	"github.com/zoeyai/zoeyuia/pkg/screen"
	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/window"
)

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Usage:   "输出格式 (json, yaml)",
}

var windowsCommand = &cli.Command{
	Name:      "windows",
	Usage:     "列出顶层窗口",
	ArgsUsage: "[filter]",
	Flags:     []cli.Flag{formatFlag},
	Action: func(c *cli.Context) error {
		format, err := outputFormat(c)
		if err != nil {
			return err
		}

		start := time.Now()
		windows, err := window.GetWindows(c.Args().First())
		logger.LogEvent("WIN", err == nil, time.Since(start), fmt.Sprintf("%d windows", len(windows)))
		if err != nil {
			return err
		}
		return inspect.Encode(c.App.Writer, windows, format)
	},
}

var dumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "导出元素列表或元素树",
	Flags: append([]cli.Flag{
		formatFlag,
		&cli.IntFlag{Name: "depth", Aliases: []string{"d"}, Usage: "最大深度 (根元素为 0)"},
		&cli.StringFlag{Name: "automation-id", Usage: "只保留指定 AutomationID"},
		&cli.StringFlag{Name: "control-type", Usage: "只保留指定控件类型，如 Button"},
		&cli.BoolFlag{Name: "tree", Usage: "按树形结构输出所有元素"},
		&cli.BoolFlag{Name: "text", Usage: "读取元素文本"},
	}, targetFlags...),
	Action: func(c *cli.Context) error {
		format, err := outputFormat(c)
		if err != nil {
			return err
		}
		root, err := openElement(c)
		if err != nil {
			return err
		}

		start := time.Now()
		if c.Bool("tree") {
			tree, err := inspect.BuildTree(root, maxDepth(c), c.Bool("text"))
			logger.LogEvent("DUMP", err == nil, time.Since(start), fmt.Sprintf("%d elements", tree.Count()))
			if err != nil {
				logger.Warn("部分元素读取失败: %v", err)
			}
			return inspect.Encode(c.App.Writer, tree, format)
		}

		elements, err := inspect.GetElements(root, &inspect.GetElementsOptions{
			AutomationID: c.String("automation-id"),
			ControlType:  c.String("control-type"),
			MaxDepth:     maxDepth(c),
			IncludeText:  c.Bool("text"),
		})
		logger.LogEvent("DUMP", err == nil, time.Since(start), fmt.Sprintf("%d elements", len(elements)))
		if err != nil {
			logger.Warn("部分元素读取失败: %v", err)
		}
		if elements == nil {
			elements = []inspect.ElementSummary{}
		}
		return inspect.Encode(c.App.Writer, elements, format)
	},
}

var findCommand = &cli.Command{
	Name:  "find",
	Usage: "按 AutomationID 查找元素",
	Flags: append([]cli.Flag{
		formatFlag,
		&cli.StringFlag{Name: "automation-id", Aliases: []string{"id"}, Usage: "AutomationID", Required: true},
	}, targetFlags...),
	Action: func(c *cli.Context) error {
		format, err := outputFormat(c)
		if err != nil {
			return err
		}
		root, err := openElement(c)
		if err != nil {
			return err
		}

		start := time.Now()
		found, err := inspect.FindElement(root, c.String("automation-id"))
		logger.LogEvent("FIND", err == nil, time.Since(start), c.String("automation-id"))
		if err != nil {
			return err
		}
		return inspect.Encode(c.App.Writer, found, format)
	},
}

// elementInfo info 命令的输出
type elementInfo struct {
	inspect.ElementSummary `yaml:",inline"`
	ControlID              int                      `json:"control_id" yaml:"control_id"`
	RuntimeID              []int32                  `json:"runtime_id" yaml:"runtime_id"`
	Process                string                   `json:"process" yaml:"process"`
	Window                 *handleprops.WindowProps `json:"window,omitempty" yaml:"window,omitempty"`
}

var infoCommand = &cli.Command{
	Name:  "info",
	Usage: "显示元素详细信息，包括所属进程和原生窗口属性",
	Flags: append([]cli.Flag{formatFlag}, targetFlags...),
	Action: func(c *cli.Context) error {
		format, err := outputFormat(c)
		if err != nil {
			return err
		}
		e, err := openElement(c)
		if err != nil {
			return err
		}

		summary, err := inspect.Summarize(e, true)
		if err != nil {
			logger.Warn("部分属性读取失败: %v", err)
		}
		out := elementInfo{
			ElementSummary: summary,
			Process:        process.Describe(summary.ProcessID),
		}

		if out.ControlID, err = e.ControlID(); err != nil {
			logger.Warn("读取 ControlID 失败: %v", err)
		}
		if out.RuntimeID, err = e.RuntimeID(); err != nil {
			logger.Warn("读取 RuntimeID 失败: %v", err)
		}

		props, err := e.DumpWindow()
		switch {
		case err == nil:
			out.Window = props
		case errors.Is(err, uia.ErrNoWindowHandle):
		default:
			logger.Warn("读取窗口属性失败: %v", err)
		}

		return inspect.Encode(c.App.Writer, out, format)
	},
}

var textCommand = &cli.Command{
	Name:  "text",
	Usage: "输出元素文本",
	Flags: targetFlags,
	Action: func(c *cli.Context) error {
		e, err := openElement(c)
		if err != nil {
			return err
		}
		text, err := e.RichText()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, text)
		return err
	},
}

var captureCommand = &cli.Command{
	Name:  "capture",
	Usage: "截取元素所在区域",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "输出文件 (.png / .jpg)", Value: "element.png"},
		&cli.BoolFlag{Name: "activate", Usage: "截图前将窗口置于前台"},
	}, targetFlags...),
	Action: func(c *cli.Context) error {
		e, err := openElement(c)
		if err != nil {
			return err
		}

		if c.Bool("activate") {
			if err := activate(e); err != nil {
				logger.Warn("激活窗口失败: %v", err)
			} else {
				time.Sleep(200 * time.Millisecond)
			}
		}

		start := time.Now()
		img, err := screen.CaptureElement(e)
		logger.LogEvent("CAP", err == nil, time.Since(start), e.String())
		if err != nil {
			return err
		}

		out := c.String("out")
		if err := screen.SaveImage(img, out); err != nil {
			return err
		}
		logger.Info("截图已保存到 %s", out)
		return nil
	},
}

func activate(e *uia.ElementInfo) error {
	hwnd, err := e.Handle()
	if err != nil {
		return err
	}
	if hwnd == 0 {
		return uia.ErrNoWindowHandle
	}
	w, err := window.GetWindowByHandle(hwnd)
	if err != nil {
		return err
	}
	return window.ActivateWindow(*w)
}
