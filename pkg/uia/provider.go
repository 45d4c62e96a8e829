// Package uia 提供基于 Windows UI Automation 的元素信息抽象。
//
// ElementInfo 包装一个由 Provider 提供的原生元素引用，按需读取属性并遍历
// 可访问性树（父节点、子节点、后代节点）。每次访问都会重新查询目标进程，
// 不做任何缓存。
package uia

import "github.com/zoeyai/zoeyuia/pkg/handleprops"

// NativeElement Provider 侧的原生元素引用，对本包不透明
type NativeElement interface{}

// TreeScope 树查询范围
type TreeScope int

// 取值与 UIA TreeScope 枚举一致
const (
	ScopeElement     TreeScope = 0x1
	ScopeChildren    TreeScope = 0x2
	ScopeDescendants TreeScope = 0x4
	ScopeParent      TreeScope = 0x8
	ScopeAncestors   TreeScope = 0x10
	ScopeSubtree     TreeScope = ScopeElement | ScopeChildren | ScopeDescendants
)

func (s TreeScope) String() string {
	switch s {
	case ScopeElement:
		return "element"
	case ScopeChildren:
		return "children"
	case ScopeDescendants:
		return "descendants"
	case ScopeParent:
		return "parent"
	case ScopeAncestors:
		return "ancestors"
	case ScopeSubtree:
		return "subtree"
	default:
		return "unknown"
	}
}

// PropertyID 元素属性标识，取值与 UIA_*PropertyId 一致
type PropertyID int

const (
	PropRuntimeID          PropertyID = 30000
	PropBoundingRectangle  PropertyID = 30001
	PropProcessID          PropertyID = 30002
	PropControlType        PropertyID = 30003
	PropName               PropertyID = 30005
	PropIsEnabled          PropertyID = 30010
	PropAutomationID       PropertyID = 30011
	PropClassName          PropertyID = 30012
	PropNativeWindowHandle PropertyID = 30020
	PropIsOffscreen        PropertyID = 30022
	PropFrameworkID        PropertyID = 30024
)

var propertyNames = map[PropertyID]string{
	PropRuntimeID:          "RuntimeId",
	PropBoundingRectangle:  "BoundingRectangle",
	PropProcessID:          "ProcessId",
	PropControlType:        "ControlType",
	PropName:               "Name",
	PropIsEnabled:          "IsEnabled",
	PropAutomationID:       "AutomationId",
	PropClassName:          "ClassName",
	PropNativeWindowHandle: "NativeWindowHandle",
	PropIsOffscreen:        "IsOffscreen",
	PropFrameworkID:        "FrameworkId",
}

func (p PropertyID) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Provider 可访问性引擎的访问接口
//
// Property 返回值的动态类型约定：
//   - RuntimeId: []int32
//   - BoundingRectangle: Rect
//   - ProcessId / ControlType / NativeWindowHandle: int32（或其他整数类型）
//   - IsEnabled / IsOffscreen: bool
//   - 其余: string
type Provider interface {
	// Root 返回可访问性树的根元素
	Root() (NativeElement, error)
	// FromWindowHandle 根据原生窗口句柄查找元素
	FromWindowHandle(hwnd uintptr) (NativeElement, error)
	// Parent 返回父元素，根元素返回 nil, nil
	Parent(e NativeElement) (NativeElement, error)
	// FindAll 按范围查找所有元素（条件恒为真），保持 Provider 返回顺序
	FindAll(e NativeElement, scope TreeScope) ([]NativeElement, error)
	// Property 读取元素当前属性值
	Property(e NativeElement, id PropertyID) (interface{}, error)
	// TextContent 通过文本模式读取完整文档文本，不支持时返回 ErrNoTextPattern
	TextContent(e NativeElement) (string, error)
}

// WindowHelper 原生窗口属性查询，仅在元素拥有窗口句柄时使用
type WindowHelper interface {
	ControlID(hwnd uintptr) int
	DumpWindow(hwnd uintptr) (*handleprops.WindowProps, error)
}
