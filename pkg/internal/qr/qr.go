// Package qr 封装二维码编码，输入链接字符串，输出 PNG 字节.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize 生成图片的边长（像素）.
const DefaultSize = 256

// Encode 将 content 编码为 PNG 二维码.
func Encode(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("encode qrcode: %w", err)
	}

	return png, nil
}
