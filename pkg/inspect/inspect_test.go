package inspect_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zoeyai/zoeyuia/pkg/inspect"
	"github.com/zoeyai/zoeyuia/pkg/uia"
	"github.com/zoeyai/zoeyuia/pkg/uia/uiatest"
)

type tree struct {
	root, app, ok, hidden, deep, deeper, deepest, beyond *uiatest.Node
}

// newTree 构造深度为 6 的模拟树
func newTree() *tree {
	t := &tree{
		root:    &uiatest.Node{Name: "Desktop", ClassName: "#32769", ControlType: 50033},
		app:     &uiatest.Node{Name: "App", ClassName: "AppWindow", ControlType: 50032, ProcessID: 100, Handle: 0x10, Rect: uia.Rect{Right: 800, Bottom: 600}},
		ok:      &uiatest.Node{Name: "OK", ClassName: "Button", AutomationID: "okBtn", ControlType: 50000, ProcessID: 100},
		hidden:  &uiatest.Node{ClassName: "Pane", ControlType: 50033, ProcessID: 100, Offscreen: true},
		deep:    &uiatest.Node{Name: "Deep", ClassName: "Edit", AutomationID: "deep", ControlType: 50004, ProcessID: 100},
		deeper:  &uiatest.Node{AutomationID: "deeper", ControlType: 50020, ProcessID: 100},
		deepest: &uiatest.Node{AutomationID: "deepest", ControlType: 50020, ProcessID: 100},
		beyond:  &uiatest.Node{AutomationID: "beyond", ControlType: 50020, ProcessID: 100},
	}
	t.deep.WithText("deep text")
	t.deepest.Add(t.beyond)
	t.deeper.Add(t.deepest)
	t.deep.Add(t.deeper)
	t.hidden.Add(t.deep)
	t.app.Add(t.ok, t.hidden)
	t.root.Add(t.app)
	return t
}

func rootOf(t *testing.T, p uia.Provider) *uia.ElementInfo {
	t.Helper()
	root, err := uia.Root(p)
	require.NoError(t, err)
	return root
}

func summaryNames(elements []inspect.ElementSummary) []string {
	out := make([]string, 0, len(elements))
	for _, e := range elements {
		if e.AutomationID != "" {
			out = append(out, e.AutomationID)
		} else {
			out = append(out, e.Name)
		}
	}
	return out
}

// failingProvider 对指定节点的 FindAll 返回错误
type failingProvider struct {
	*uiatest.Provider
	failOn *uiatest.Node
	err    error
}

func (p *failingProvider) FindAll(e uia.NativeElement, scope uia.TreeScope) ([]uia.NativeElement, error) {
	if ref, ok := e.(*uiatest.Ref); ok && ref.Node == p.failOn {
		return nil, p.err
	}
	return p.Provider.FindAll(e, scope)
}

func TestGetElementsDefaultDepth(t *testing.T) {
	tr := newTree()
	root := rootOf(t, uiatest.NewProvider(tr.root))

	elements, err := inspect.GetElements(root, nil)
	require.NoError(t, err)
	// 隐藏且无名称的 Pane 被过滤，深度 4 以下不遍历
	require.Equal(t, []string{"Desktop", "App", "okBtn", "deep"}, summaryNames(elements))

	for _, e := range elements {
		require.LessOrEqual(t, e.Depth, inspect.DefaultMaxDepth)
	}

	app := elements[1]
	require.Equal(t, "Window", app.ControlType)
	require.Equal(t, uintptr(0x10), app.Handle)
	require.Equal(t, 100, app.ProcessID)
	require.Equal(t, 800, app.Rect.Width())
	require.True(t, app.IsEnabled)
	require.True(t, app.IsVisible)
}

func TestGetElementsFilters(t *testing.T) {
	tr := newTree()
	root := rootOf(t, uiatest.NewProvider(tr.root))

	elements, err := inspect.GetElements(root, &inspect.GetElementsOptions{ControlType: "button"})
	require.NoError(t, err)
	require.Equal(t, []string{"okBtn"}, summaryNames(elements))

	elements, err = inspect.GetElements(root, &inspect.GetElementsOptions{AutomationID: "deeper", MaxDepth: 4})
	require.NoError(t, err)
	require.Equal(t, []string{"deeper"}, summaryNames(elements))
	require.Equal(t, 4, elements[0].Depth)

	elements, err = inspect.GetElements(root, &inspect.GetElementsOptions{AutomationID: "deeper", MaxDepth: 3})
	require.NoError(t, err)
	require.Empty(t, elements)
}

func TestGetElementsIncludeText(t *testing.T) {
	tr := newTree()
	root := rootOf(t, uiatest.NewProvider(tr.root))

	elements, err := inspect.GetElements(root, &inspect.GetElementsOptions{IncludeText: true})
	require.NoError(t, err)

	values := map[string]string{}
	for _, e := range elements {
		values[e.AutomationID] = e.Value
	}
	require.Equal(t, "deep text", values["deep"])
	// 不支持 TextPattern 时退回名称
	require.Equal(t, "OK", values["okBtn"])
}

func TestGetElementsCollectsErrors(t *testing.T) {
	errBoom := errors.New("boom")
	tr := newTree()
	tr.ok.Fail(uia.PropName, errBoom)

	p := &failingProvider{
		Provider: uiatest.NewProvider(tr.root),
		failOn:   tr.hidden,
		err:      fmt.Errorf("%w: element gone", uia.ErrProviderUnavailable),
	}
	root := rootOf(t, p)

	elements, err := inspect.GetElements(root, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, errBoom)
	require.ErrorIs(t, err, uia.ErrProviderUnavailable)

	// 出错的元素仍保留已读到的字段，遍历继续
	require.Equal(t, []string{"Desktop", "App", "okBtn"}, summaryNames(elements))
	require.Equal(t, "Button", elements[2].ControlType)
	require.Empty(t, elements[2].Name)
}

func TestGetElementsNilRoot(t *testing.T) {
	_, err := inspect.GetElements(nil, nil)
	require.ErrorIs(t, err, uia.ErrInvalidArgument)
}

func TestFindElement(t *testing.T) {
	tr := newTree()
	root := rootOf(t, uiatest.NewProvider(tr.root))

	found, err := inspect.FindElement(root, "deepest")
	require.NoError(t, err)
	require.Equal(t, 5, found.Depth)

	_, err = inspect.FindElement(root, "beyond")
	require.Error(t, err)

	_, err = inspect.FindElement(root, "")
	require.ErrorIs(t, err, uia.ErrInvalidArgument)
}

func TestBuildTree(t *testing.T) {
	tr := newTree()
	root := rootOf(t, uiatest.NewProvider(tr.root))

	node, err := inspect.BuildTree(root, 2, false)
	require.NoError(t, err)
	// 树中保留隐藏元素
	require.Equal(t, 4, node.Count())
	require.Equal(t, "Desktop", node.Name)
	require.Len(t, node.Children, 1)
	require.Len(t, node.Children[0].Children, 2)
	require.False(t, node.Children[0].Children[1].IsVisible)
	require.Empty(t, node.Children[0].Children[1].Children)
}

func TestEncode(t *testing.T) {
	tr := newTree()
	root := rootOf(t, uiatest.NewProvider(tr.root))

	node, err := inspect.BuildTree(root, 2, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, inspect.Encode(&buf, node, "json"))
	require.Contains(t, buf.String(), `"automation_id": "okBtn"`)
	require.Contains(t, buf.String(), `"children": [`)

	buf.Reset()
	require.NoError(t, inspect.Encode(&buf, node, "YAML"))
	out := buf.String()
	require.Contains(t, out, "automation_id: okBtn")
	require.Contains(t, out, "control_type: Button")
	require.True(t, strings.HasPrefix(out, "automation_id:"), out)

	require.Error(t, inspect.Encode(&buf, node, "xml"))
}
