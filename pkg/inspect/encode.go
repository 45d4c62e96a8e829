package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encode 按格式输出，format 为 json 或 yaml
func Encode(w io.Writer, v interface{}, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("JSON 编码失败: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("YAML 编码失败: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("YAML 编码失败: %w", err)
		}
	default:
		return fmt.Errorf("不支持的输出格式: %s", format)
	}
	return nil
}
