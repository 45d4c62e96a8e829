// Package inspect 遍历元素树，导出元素摘要
package inspect

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// DefaultMaxDepth GetElements 的默认遍历深度
const DefaultMaxDepth = 3

// findMaxDepth FindElement 的遍历深度
const findMaxDepth = 5

// GetElementsOptions UI 元素获取选项
type GetElementsOptions struct {
	AutomationID string
	// ControlType 控件类型名称，如 "Button"，不区分大小写
	ControlType string
	// MaxDepth 根元素深度为 0，<= 0 时使用 DefaultMaxDepth
	MaxDepth int
	// IncludeText 是否读取 RichText 填充 Value
	IncludeText bool
}

// ElementSummary UI 元素摘要
type ElementSummary struct {
	AutomationID string   `json:"automation_id" yaml:"automation_id"`
	Name         string   `json:"name" yaml:"name"`
	ClassName    string   `json:"class_name" yaml:"class_name"`
	ControlType  string   `json:"control_type" yaml:"control_type"`
	FrameworkID  string   `json:"framework_id,omitempty" yaml:"framework_id,omitempty"`
	Handle       uintptr  `json:"handle,omitempty" yaml:"handle,omitempty"`
	ProcessID    int      `json:"pid" yaml:"pid"`
	Rect         uia.Rect `json:"rect" yaml:"rect"`
	IsEnabled    bool     `json:"is_enabled" yaml:"is_enabled"`
	IsVisible    bool     `json:"is_visible" yaml:"is_visible"`
	Value        string   `json:"value,omitempty" yaml:"value,omitempty"`
	Depth        int      `json:"depth" yaml:"depth"`
}

// Summarize 读取元素摘要
// 单个属性读取失败不会中断，已读到的字段照常返回，错误合并后一并返回
func Summarize(e *uia.ElementInfo, includeText bool) (ElementSummary, error) {
	var (
		s      ElementSummary
		result *multierror.Error
		err    error
	)

	if s.AutomationID, err = e.AutomationID(); err != nil {
		result = multierror.Append(result, fmt.Errorf("AutomationID: %w", err))
	}
	if s.Name, err = e.Name(); err != nil {
		result = multierror.Append(result, fmt.Errorf("Name: %w", err))
	}
	if s.ClassName, err = e.ClassName(); err != nil {
		result = multierror.Append(result, fmt.Errorf("ClassName: %w", err))
	}
	if s.FrameworkID, err = e.FrameworkID(); err != nil {
		result = multierror.Append(result, fmt.Errorf("FrameworkID: %w", err))
	}

	ct, err := e.ControlType()
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("ControlType: %w", err))
	} else {
		s.ControlType = uia.ControlTypeName(ct)
	}

	if s.Handle, err = e.Handle(); err != nil {
		result = multierror.Append(result, fmt.Errorf("Handle: %w", err))
	}
	s.ProcessID = e.ProcessID()

	if s.Rect, err = e.Rectangle(); err != nil {
		result = multierror.Append(result, fmt.Errorf("Rectangle: %w", err))
	}
	if s.IsEnabled, err = e.Enabled(); err != nil {
		result = multierror.Append(result, fmt.Errorf("Enabled: %w", err))
	}
	if s.IsVisible, err = e.Visible(); err != nil {
		result = multierror.Append(result, fmt.Errorf("Visible: %w", err))
	}

	if includeText {
		if s.Value, err = e.RichText(); err != nil {
			result = multierror.Append(result, fmt.Errorf("RichText: %w", err))
		}
	}

	return s, result.ErrorOrNil()
}

// GetElements 获取 UI 元素列表
// 保留有 AutomationID、有名称或可见的元素；遍历中的错误会被收集，遍历继续进行
func GetElements(root *uia.ElementInfo, opts *GetElementsOptions) ([]ElementSummary, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: 根元素为空", uia.ErrInvalidArgument)
	}
	if opts == nil {
		opts = &GetElementsOptions{MaxDepth: DefaultMaxDepth}
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	w := &walker{opts: opts, maxDepth: maxDepth}
	w.collect(root, 0)
	return w.results, w.errs.ErrorOrNil()
}

// FindElement 按 AutomationID 查找元素
func FindElement(root *uia.ElementInfo, automationID string) (*ElementSummary, error) {
	if automationID == "" {
		return nil, fmt.Errorf("%w: AutomationID 为空", uia.ErrInvalidArgument)
	}

	elements, err := GetElements(root, &GetElementsOptions{
		AutomationID: automationID,
		MaxDepth:     findMaxDepth,
	})
	if len(elements) > 0 {
		return &elements[0], nil
	}
	if err != nil {
		return nil, fmt.Errorf("未找到元素 %q: %w", automationID, err)
	}
	return nil, fmt.Errorf("未找到元素: %s", automationID)
}

type walker struct {
	opts     *GetElementsOptions
	maxDepth int
	results  []ElementSummary
	errs     *multierror.Error
}

func (w *walker) collect(e *uia.ElementInfo, depth int) {
	if depth > w.maxDepth {
		return
	}

	s, err := Summarize(e, w.opts.IncludeText)
	s.Depth = depth
	if err != nil {
		w.errs = multierror.Append(w.errs, fmt.Errorf("%s: %w", e, err))
	}
	if w.match(s) {
		w.results = append(w.results, s)
	}

	children, err := e.Children()
	if err != nil {
		w.errs = multierror.Append(w.errs, fmt.Errorf("%s 子元素: %w", e, err))
		return
	}
	for _, child := range children {
		w.collect(child, depth+1)
	}
}

func (w *walker) match(s ElementSummary) bool {
	if w.opts.AutomationID != "" && s.AutomationID != w.opts.AutomationID {
		return false
	}
	if w.opts.ControlType != "" && !strings.EqualFold(s.ControlType, w.opts.ControlType) {
		return false
	}
	return s.AutomationID != "" || s.Name != "" || s.IsVisible
}
