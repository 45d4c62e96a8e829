package screen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Encode 将图像按格式写入 w
// format: "png" 或 "jpeg"，默认 "png"
// quality: JPEG 质量 1-100，默认 80
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	if img == nil {
		return fmt.Errorf("图像为空")
	}

	if quality <= 0 || quality > 100 {
		quality = 80
	}

	switch strings.ToLower(format) {
	case "", "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("PNG 编码失败: %w", err)
		}
	case "jpeg", "jpg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("JPEG 编码失败: %w", err)
		}
	default:
		return fmt.Errorf("不支持的图像格式: %s", format)
	}
	return nil
}

// SaveImage 保存图像，格式由扩展名决定
func SaveImage(img image.Image, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	var buf bytes.Buffer
	if err := Encode(&buf, img, format, 0); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("写入图像失败: %w", err)
	}
	return nil
}

// ImageToBase64 将图像转换为 data URI
func ImageToBase64(img image.Image, format string, quality int) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return "", err
	}

	mimeType := "image/png"
	if f := strings.ToLower(format); f == "jpeg" || f == "jpg" {
		mimeType = "image/jpeg"
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}
