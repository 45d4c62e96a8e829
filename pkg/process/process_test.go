package process

import (
	"os"
	"strconv"
	"strings"
	"testing"
)

func TestGetProcessByPIDSelf(t *testing.T) {
	pid := os.Getpid()

	info, err := GetProcessByPID(pid)
	if err != nil {
		t.Skipf("无法查询当前进程 (可能缺少权限): %v", err)
	}

	if info.PID != pid {
		t.Errorf("PID 应为 %d, 实际为 %d", pid, info.PID)
	}
	if !info.Running {
		t.Error("当前进程应处于运行状态")
	}
	t.Logf("当前进程: %+v", info)
}

func TestGetProcessByPIDInvalid(t *testing.T) {
	if _, err := GetProcessByPID(0); err == nil {
		t.Error("PID 0 应返回错误")
	}
	if _, err := GetProcessByPID(-5); err == nil {
		t.Error("负数 PID 应返回错误")
	}
	if IsProcessRunning(0) {
		t.Error("PID 0 不应处于运行状态")
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(0); got != "unknown" {
		t.Errorf("Describe(0) 应为 unknown, 实际为 %q", got)
	}

	pid := os.Getpid()
	got := Describe(pid)
	if got == "unknown" || !strings.Contains(got, strconv.Itoa(pid)) {
		t.Errorf("Describe(%d) 结果错误: %q", pid, got)
	}
	t.Logf("当前进程描述: %s", got)
}
