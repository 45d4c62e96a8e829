// Package process 提供元素所属进程的查询
package process

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID     int    `json:"pid" yaml:"pid"`
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Running bool   `json:"running" yaml:"running"`
}

// GetProcessByPID 按 PID 获取进程信息
func GetProcessByPID(pid int) (*ProcessInfo, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("无效的 PID: %d", pid)
	}

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, fmt.Errorf("进程不存在: PID=%d", pid)
	}

	name, _ := proc.Name()
	exe, _ := proc.Exe()
	running, _ := proc.IsRunning()

	return &ProcessInfo{
		PID:     pid,
		Name:    name,
		Path:    exe,
		Running: running,
	}, nil
}

// IsProcessRunning 检查进程是否正在运行
func IsProcessRunning(pid int) bool {
	info, err := GetProcessByPID(pid)
	if err != nil {
		return false
	}
	return info.Running
}

// FindProcess 按名称查找进程 (不区分大小写，支持部分匹配)
func FindProcess(name string) ([]ProcessInfo, error) {
	pids, err := process.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	name = strings.ToLower(name)
	var matches []ProcessInfo

	for _, pid := range pids {
		proc, err := process.NewProcess(pid)
		if err != nil {
			continue
		}

		procName, err := proc.Name()
		if err != nil {
			continue
		}

		if strings.Contains(strings.ToLower(procName), name) {
			exe, _ := proc.Exe()
			matches = append(matches, ProcessInfo{
				PID:     int(pid),
				Name:    procName,
				Path:    exe,
				Running: true,
			})
		}
	}

	return matches, nil
}

// Describe 返回 "name (pid)" 形式的描述，进程不可查询时只返回 PID
func Describe(pid int) string {
	if pid <= 0 {
		return "unknown"
	}
	info, err := GetProcessByPID(pid)
	if err != nil || info.Name == "" {
		return fmt.Sprintf("PID %d", pid)
	}
	return fmt.Sprintf("%s (%d)", info.Name, pid)
}
