package window

import (
	"os"
	"runtime"
	"testing"
)

func TestMatchFilter(t *testing.T) {
	tests := []struct {
		title, owner, filter string
		want                 bool
	}{
		{"无标题 - 记事本", "notepad", "", true},
		{"无标题 - 记事本", "notepad", "记事本", true},
		{"Untitled - Notepad", "notepad", "notepad", true},
		{"Calculator", "CalculatorApp", "calc", true},
		{"Calculator", "CalculatorApp", "word", false},
	}

	for _, tt := range tests {
		if got := matchFilter(tt.title, tt.owner, tt.filter); got != tt.want {
			t.Errorf("matchFilter(%q, %q, %q) = %v, 期望 %v", tt.title, tt.owner, tt.filter, got, tt.want)
		}
	}
}

func TestFindByHandle(t *testing.T) {
	windows := []WindowInfo{
		{Handle: 0x1001, Title: "Notepad"},
		{Handle: 0x2001, Title: "Calculator"},
		{Handle: 0, Title: "no handle"},
	}

	w := findByHandle(windows, 0x2001)
	if w == nil || w.Title != "Calculator" {
		t.Errorf("应找到 Calculator, 实际为 %+v", w)
	}

	if findByHandle(windows, 0x3001) != nil {
		t.Error("不存在的句柄应返回 nil")
	}
	if findByHandle(windows, 0) != nil {
		t.Error("零句柄不应匹配任何窗口")
	}
}

func TestGetWindows(t *testing.T) {
	if runtime.GOOS != "windows" && os.Getenv("DISPLAY") == "" {
		t.Skip("没有图形环境，跳过窗口枚举")
	}

	windows, err := GetWindows()
	if err != nil {
		t.Skipf("当前环境无法枚举窗口: %v", err)
	}

	for _, w := range windows {
		if w.Title == "" {
			t.Errorf("不应返回无标题窗口: %+v", w)
		}
		t.Logf("窗口: 0x%X %q (%s, PID %d) %s", w.Handle, w.Title, w.OwnerName, w.PID, w.Bounds)
	}
}
