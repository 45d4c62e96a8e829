package uia

import (
	"fmt"

	"github.com/zoeyai/zoeyuia/pkg/handleprops"
)

// ElementInfo 可访问性树中一个元素的信息
//
// 只保存原生元素引用，所有属性在每次调用时实时读取。
// 不是并发安全的，每个 goroutine 应使用自己的 ElementInfo。
type ElementInfo struct {
	elem     NativeElement
	provider Provider
	opts     *Options
}

// Identity 判定两个元素逻辑相等的字段集合
//
// 可直接作为 map 键使用。RuntimeID 不参与比较。
type Identity struct {
	Handle       uintptr
	ClassName    string
	Name         string
	ProcessID    int
	AutomationID string
	FrameworkID  string
	ControlType  int
}

// SourceKind 构造来源类型
type SourceKind int

const (
	sourceInvalid SourceKind = iota
	// SourceRoot 可访问性树根
	SourceRoot
	// SourceHandle 原生窗口句柄
	SourceHandle
	// SourceElement 已有的原生元素引用
	SourceElement
)

// Source ElementInfo 的构造来源
type Source struct {
	Kind    SourceKind
	Handle  uintptr
	Element NativeElement
}

// RootSource 根元素来源
func RootSource() Source {
	return Source{Kind: SourceRoot}
}

// HandleSource 窗口句柄来源
func HandleSource(hwnd uintptr) Source {
	return Source{Kind: SourceHandle, Handle: hwnd}
}

// ElementSource 原生元素来源
func ElementSource(e NativeElement) Source {
	return Source{Kind: SourceElement, Element: e}
}

// New 根据来源创建 ElementInfo
func New(p Provider, src Source, opts ...Option) (*ElementInfo, error) {
	switch src.Kind {
	case SourceRoot:
		return Root(p, opts...)
	case SourceHandle:
		return FromHandle(p, src.Handle, opts...)
	case SourceElement:
		return FromElement(p, src.Element, opts...)
	default:
		return nil, fmt.Errorf("%w: 不支持的来源类型 %d", ErrInvalidArgument, src.Kind)
	}
}

// Root 创建可访问性树根元素
func Root(p Provider, opts ...Option) (*ElementInfo, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: provider 为空", ErrInvalidArgument)
	}
	elem, err := p.Root()
	if err != nil {
		return nil, err
	}
	return wrap(p, elem, ApplyOptions(opts...)), nil
}

// FromHandle 通过原生窗口句柄创建 ElementInfo
func FromHandle(p Provider, hwnd uintptr, opts ...Option) (*ElementInfo, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: provider 为空", ErrInvalidArgument)
	}
	elem, err := p.FromWindowHandle(hwnd)
	if err != nil {
		return nil, err
	}
	return wrap(p, elem, ApplyOptions(opts...)), nil
}

// FromElement 包装已有的原生元素引用
func FromElement(p Provider, elem NativeElement, opts ...Option) (*ElementInfo, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: provider 为空", ErrInvalidArgument)
	}
	if elem == nil {
		return nil, fmt.Errorf("%w: 原生元素为空", ErrInvalidArgument)
	}
	return wrap(p, elem, ApplyOptions(opts...)), nil
}

func wrap(p Provider, elem NativeElement, o *Options) *ElementInfo {
	return &ElementInfo{elem: elem, provider: p, opts: o}
}

// Element 返回原生元素引用
func (e *ElementInfo) Element() NativeElement {
	return e.elem
}

// Provider 返回所使用的 Provider
func (e *ElementInfo) Provider() Provider {
	return e.provider
}

// ==================== 属性 ====================

// AutomationID 返回 AutomationId
func (e *ElementInfo) AutomationID() (string, error) {
	return e.stringProp(PropAutomationID)
}

// ControlID 返回窗口控件 ID，元素没有窗口句柄时返回 0
func (e *ElementInfo) ControlID() (int, error) {
	hwnd, err := e.Handle()
	if err != nil {
		return 0, err
	}
	if hwnd == 0 || e.opts.Helper == nil {
		return 0, nil
	}
	return e.opts.Helper.ControlID(hwnd), nil
}

// ProcessID 返回进程 ID，无法获取时返回 0
func (e *ElementInfo) ProcessID() int {
	v, err := e.provider.Property(e.elem, PropProcessID)
	if err == nil {
		var pid int
		if pid, err = toInt(PropProcessID, v); err == nil {
			return pid
		}
	}
	e.degrade("ProcessID", err)
	return 0
}

// FrameworkID 返回 UI 框架标识 (Win32, WinForm, WPF, ...)
func (e *ElementInfo) FrameworkID() (string, error) {
	return e.stringProp(PropFrameworkID)
}

// RuntimeID 返回运行时 ID，仅在本次会话内有效
func (e *ElementInfo) RuntimeID() ([]int32, error) {
	v, err := e.provider.Property(e.elem, PropRuntimeID)
	if err != nil {
		return nil, err
	}
	switch id := v.(type) {
	case nil:
		return nil, nil
	case []int32:
		return id, nil
	case []int:
		out := make([]int32, len(id))
		for i, n := range id {
			out[i] = int32(n)
		}
		return out, nil
	default:
		return nil, unexpected(PropRuntimeID, v)
	}
}

// Name 返回元素名称
func (e *ElementInfo) Name() (string, error) {
	return e.stringProp(PropName)
}

// ClassName 返回类名
func (e *ElementInfo) ClassName() (string, error) {
	return e.stringProp(PropClassName)
}

// ControlType 返回控件类型 ID
func (e *ElementInfo) ControlType() (int, error) {
	v, err := e.provider.Property(e.elem, PropControlType)
	if err != nil {
		return 0, err
	}
	return toInt(PropControlType, v)
}

// Handle 返回原生窗口句柄，没有时为 0
func (e *ElementInfo) Handle() (uintptr, error) {
	v, err := e.provider.Property(e.elem, PropNativeWindowHandle)
	if err != nil {
		return 0, err
	}
	h, err := toInt(PropNativeWindowHandle, v)
	if err != nil {
		return 0, err
	}
	return uintptr(uint32(h)), nil
}

// Visible 元素是否在屏幕上可见
func (e *ElementInfo) Visible() (bool, error) {
	offscreen, err := e.boolProp(PropIsOffscreen)
	if err != nil {
		return false, err
	}
	return !offscreen, nil
}

// Enabled 元素是否可用
func (e *ElementInfo) Enabled() (bool, error) {
	return e.boolProp(PropIsEnabled)
}

// Rectangle 返回元素边界
func (e *ElementInfo) Rectangle() (Rect, error) {
	v, err := e.provider.Property(e.elem, PropBoundingRectangle)
	if err != nil {
		return Rect{}, err
	}
	switch r := v.(type) {
	case nil:
		return Rect{}, nil
	case Rect:
		return r, nil
	case *Rect:
		return *r, nil
	default:
		return Rect{}, unexpected(PropBoundingRectangle, v)
	}
}

// DumpWindow 导出原生窗口属性
func (e *ElementInfo) DumpWindow() (*handleprops.WindowProps, error) {
	hwnd, err := e.Handle()
	if err != nil {
		return nil, err
	}
	if hwnd == 0 || e.opts.Helper == nil {
		return nil, ErrNoWindowHandle
	}
	return e.opts.Helper.DumpWindow(hwnd)
}

// RichText 返回元素文本
//
// 没有类名的元素视为纯文本节点，直接返回 Name；否则通过 TextPattern
// 读取完整文档文本，失败时回退到 Name。
func (e *ElementInfo) RichText() (string, error) {
	className, err := e.ClassName()
	if err != nil {
		return "", err
	}
	if className == "" {
		return e.Name()
	}

	text, err := e.provider.TextContent(e.elem)
	if err != nil {
		// TODO: 调用方确认后提供严格模式，直接返回 TextPattern 错误
		e.degrade("RichText", err)
		return e.Name()
	}
	return text, nil
}

// ==================== 树遍历 ====================

// Parent 返回父元素，根元素返回 nil
func (e *ElementInfo) Parent() (*ElementInfo, error) {
	parent, err := e.provider.Parent(e.elem)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, nil
	}
	return wrap(e.provider, parent, e.opts), nil
}

// Children 返回直接子元素
func (e *ElementInfo) Children() ([]*ElementInfo, error) {
	return e.findAll(ScopeChildren)
}

// Descendants 返回所有后代元素
func (e *ElementInfo) Descendants() ([]*ElementInfo, error) {
	return e.findAll(ScopeDescendants)
}

func (e *ElementInfo) findAll(scope TreeScope) ([]*ElementInfo, error) {
	elems, err := e.provider.FindAll(e.elem, scope)
	if err != nil {
		return nil, err
	}
	result := make([]*ElementInfo, 0, len(elems))
	for _, elem := range elems {
		if elem == nil {
			continue
		}
		result = append(result, wrap(e.provider, elem, e.opts))
	}
	return result, nil
}

// ==================== 相等性 ====================

// Identity 读取用于相等性判断的字段
func (e *ElementInfo) Identity() (Identity, error) {
	var (
		id  Identity
		err error
	)
	if id.Handle, err = e.Handle(); err != nil {
		return Identity{}, err
	}
	if id.ClassName, err = e.ClassName(); err != nil {
		return Identity{}, err
	}
	if id.Name, err = e.Name(); err != nil {
		return Identity{}, err
	}
	id.ProcessID = e.ProcessID()
	if id.AutomationID, err = e.AutomationID(); err != nil {
		return Identity{}, err
	}
	if id.FrameworkID, err = e.FrameworkID(); err != nil {
		return Identity{}, err
	}
	if id.ControlType, err = e.ControlType(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Equal 判断两个 ElementInfo 是否描述同一个实际元素
//
// 读取任一方属性失败时视为不相等。
func (e *ElementInfo) Equal(other *ElementInfo) bool {
	if e == nil || other == nil {
		return false
	}
	a, err := e.Identity()
	if err != nil {
		return false
	}
	b, err := other.Identity()
	if err != nil {
		return false
	}
	return a == b
}

func (e *ElementInfo) String() string {
	name, _ := e.Name()
	className, _ := e.ClassName()
	controlType, _ := e.ControlType()
	return fmt.Sprintf("%s - %q, %s", ControlTypeName(controlType), name, className)
}

// ==================== 内部工具 ====================

func (e *ElementInfo) degrade(op string, err error) {
	if e.opts.Diagnostics != nil {
		e.opts.Diagnostics(op, err)
	}
}

func (e *ElementInfo) stringProp(id PropertyID) (string, error) {
	v, err := e.provider.Property(e.elem, id)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", unexpected(id, v)
	}
}

func (e *ElementInfo) boolProp(id PropertyID) (bool, error) {
	v, err := e.provider.Property(e.elem, id)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	default:
		return false, unexpected(id, v)
	}
}

func toInt(id PropertyID, v interface{}) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uintptr:
		return int(n), nil
	default:
		return 0, unexpected(id, v)
	}
}

func unexpected(id PropertyID, v interface{}) error {
	return fmt.Errorf("%w: %s 为 %T", ErrUnexpectedValue, id, v)
}
