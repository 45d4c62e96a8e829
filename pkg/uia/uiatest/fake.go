// Package uiatest 提供内存中的 uia.Provider 实现，用于测试
package uiatest

import (
	"fmt"
	"sync"

	"github.com/zoeyai/zoeyuia/pkg/handleprops"
	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// Node 假元素树中的一个节点
type Node struct {
	Name         string
	ClassName    string
	AutomationID string
	FrameworkID  string
	ControlType  int
	ProcessID    int
	Handle       uintptr
	RuntimeID    []int32
	Rect         uia.Rect
	Offscreen    bool
	Disabled     bool

	// Text 为 nil 表示不支持 TextPattern
	Text *string
	// TextErr 读取文本时返回的错误
	TextErr error
	// PropErr 指定属性读取失败
	PropErr map[uia.PropertyID]error

	Children []*Node
	parent   *Node
}

// Add 添加子节点，返回自身便于链式构造
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Remove 移除子节点
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Fail 设置某个属性读取失败
func (n *Node) Fail(id uia.PropertyID, err error) *Node {
	if n.PropErr == nil {
		n.PropErr = make(map[uia.PropertyID]error)
	}
	n.PropErr[id] = err
	return n
}

// WithText 设置 TextPattern 文本
func (n *Node) WithText(text string) *Node {
	n.Text = &text
	return n
}

// Ref 假的原生元素引用，每次查询都会生成新的引用
type Ref struct {
	Node *Node
	seq  int
}

// Provider 基于节点树的假 Provider
type Provider struct {
	mu   sync.Mutex
	root *Node
	dead bool
	seq  int

	// VaryRuntimeID 为 true 时 RuntimeID 末尾追加引用序号，模拟不同查询路径得到不同运行时 ID
	VaryRuntimeID bool

	calls map[string]int
}

// NewProvider 创建假 Provider
func NewProvider(root *Node) *Provider {
	return &Provider{root: root, calls: make(map[string]int)}
}

// Kill 模拟目标进程退出，之后所有调用都会失败
func (p *Provider) Kill() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dead = true
}

// Calls 返回某个方法被调用的次数
func (p *Provider) Calls(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[method]
}

// Ref 为节点生成新的原生引用
func (p *Provider) Ref(n *Node) *Ref {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.newRef(n)
}

func (p *Provider) newRef(n *Node) *Ref {
	p.seq++
	return &Ref{Node: n, seq: p.seq}
}

func (p *Provider) enter(method string) error {
	p.calls[method]++
	if p.dead {
		return fmt.Errorf("%w: 目标进程已退出", uia.ErrProviderUnavailable)
	}
	return nil
}

func (p *Provider) node(e uia.NativeElement) (*Ref, error) {
	ref, ok := e.(*Ref)
	if !ok || ref == nil || ref.Node == nil {
		return nil, fmt.Errorf("%w: 不是 uiatest 元素 (%T)", uia.ErrInvalidArgument, e)
	}
	return ref, nil
}

// Root 返回根节点
func (p *Provider) Root() (uia.NativeElement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter("Root"); err != nil {
		return nil, err
	}
	return p.newRef(p.root), nil
}

// FromWindowHandle 在整棵树中查找拥有该句柄的节点
func (p *Provider) FromWindowHandle(hwnd uintptr) (uia.NativeElement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter("FromWindowHandle"); err != nil {
		return nil, err
	}
	if hwnd != 0 {
		if p.root.Handle == hwnd {
			return p.newRef(p.root), nil
		}
		for _, n := range descendants(p.root) {
			if n.Handle == hwnd {
				return p.newRef(n), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: 句柄 0x%X 没有对应元素", uia.ErrProviderUnavailable, hwnd)
}

// Parent 返回父节点
func (p *Provider) Parent(e uia.NativeElement) (uia.NativeElement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter("Parent"); err != nil {
		return nil, err
	}
	ref, err := p.node(e)
	if err != nil {
		return nil, err
	}
	if ref.Node.parent == nil {
		return nil, nil
	}
	return p.newRef(ref.Node.parent), nil
}

// FindAll 按范围返回节点，后代按先序遍历
func (p *Provider) FindAll(e uia.NativeElement, scope uia.TreeScope) ([]uia.NativeElement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter("FindAll"); err != nil {
		return nil, err
	}
	ref, err := p.node(e)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	switch scope {
	case uia.ScopeChildren:
		nodes = ref.Node.Children
	case uia.ScopeDescendants:
		nodes = descendants(ref.Node)
	default:
		return nil, fmt.Errorf("%w: 不支持的范围 %s", uia.ErrInvalidArgument, scope)
	}

	result := make([]uia.NativeElement, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, p.newRef(n))
	}
	return result, nil
}

// Property 读取节点属性
func (p *Provider) Property(e uia.NativeElement, id uia.PropertyID) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter("Property"); err != nil {
		return nil, err
	}
	ref, err := p.node(e)
	if err != nil {
		return nil, err
	}
	n := ref.Node
	if err := n.PropErr[id]; err != nil {
		return nil, err
	}

	switch id {
	case uia.PropRuntimeID:
		rid := append([]int32(nil), n.RuntimeID...)
		if p.VaryRuntimeID {
			rid = append(rid, int32(ref.seq))
		}
		return rid, nil
	case uia.PropBoundingRectangle:
		return n.Rect, nil
	case uia.PropProcessID:
		return int32(n.ProcessID), nil
	case uia.PropControlType:
		return int32(n.ControlType), nil
	case uia.PropName:
		return n.Name, nil
	case uia.PropIsEnabled:
		return !n.Disabled, nil
	case uia.PropAutomationID:
		return n.AutomationID, nil
	case uia.PropClassName:
		return n.ClassName, nil
	case uia.PropNativeWindowHandle:
		return int32(n.Handle), nil
	case uia.PropIsOffscreen:
		return n.Offscreen, nil
	case uia.PropFrameworkID:
		return n.FrameworkID, nil
	default:
		return nil, fmt.Errorf("%w: 未知属性 %d", uia.ErrInvalidArgument, int(id))
	}
}

// TextContent 返回节点文本
func (p *Provider) TextContent(e uia.NativeElement) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enter("TextContent"); err != nil {
		return "", err
	}
	ref, err := p.node(e)
	if err != nil {
		return "", err
	}
	if ref.Node.TextErr != nil {
		return "", ref.Node.TextErr
	}
	if ref.Node.Text == nil {
		return "", uia.ErrNoTextPattern
	}
	return *ref.Node.Text, nil
}

// descendants 先序遍历
func descendants(n *Node) []*Node {
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c)
		out = append(out, descendants(c)...)
	}
	return out
}

// WindowHelper 假的原生窗口属性查询
type WindowHelper struct {
	ControlIDs map[uintptr]int
	Calls      int
}

// ControlID 返回预设的控件 ID
func (h *WindowHelper) ControlID(hwnd uintptr) int {
	h.Calls++
	return h.ControlIDs[hwnd]
}

// DumpWindow 返回仅包含句柄和控件 ID 的属性
func (h *WindowHelper) DumpWindow(hwnd uintptr) (*handleprops.WindowProps, error) {
	h.Calls++
	return &handleprops.WindowProps{Handle: hwnd, ControlID: h.ControlIDs[hwnd]}, nil
}
