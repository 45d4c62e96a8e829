package screen

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 1, color.RGBA{R: 255, A: 255})
	}
	return img
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "png", 0); err != nil {
		t.Fatalf("PNG 编码失败: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("PNG 解码失败: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 4 {
		t.Errorf("尺寸错误: %v", decoded.Bounds())
	}

	buf.Reset()
	if err := Encode(&buf, testImage(), "JPG", 200); err != nil {
		t.Errorf("JPEG 编码失败: %v", err)
	}

	if err := Encode(&buf, testImage(), "bmp", 0); err == nil {
		t.Error("不支持的格式应返回错误")
	}
	if err := Encode(&buf, nil, "png", 0); err == nil {
		t.Error("空图像应返回错误")
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "element.png")
	if err := SaveImage(testImage(), path); err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开文件失败: %v", err)
	}
	defer f.Close()

	if _, err := png.Decode(f); err != nil {
		t.Errorf("保存的文件不是有效 PNG: %v", err)
	}
}

func TestImageToBase64(t *testing.T) {
	s, err := ImageToBase64(testImage(), "jpeg", 90)
	if err != nil {
		t.Fatalf("转换失败: %v", err)
	}
	if !strings.HasPrefix(s, "data:image/jpeg;base64,") {
		t.Errorf("前缀错误: %.40s", s)
	}
}

func TestCaptureRectEmpty(t *testing.T) {
	if _, err := CaptureRect(uia.Rect{Left: 10, Top: 10, Right: 10, Bottom: 50}); err == nil {
		t.Error("空矩形应返回错误")
	}
}
