package service

import (
	crand "crypto/rand"
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"strings"
)

const (
	// storedNameRandomBytes 落盘文件名随机段的字节数.
	storedNameRandomBytes = 8
	// accessTokenBytes 访问令牌的字节数. 128 位熵，碰撞概率可忽略，
	// 数据库唯一索引仍是最终保障.
	accessTokenBytes = 16
)

// unsafeChars 清洗文件名时替换掉的字符集合.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// randomToken 生成 n 字节随机数的 URL 安全编码.
func randomToken(n int) string {
	buf := make([]byte, n)
	// crypto/rand.Read 只在系统熵源不可用时失败，此时不应继续服务
	if _, err := crand.Read(buf); err != nil {
		panic(fmt.Sprintf("read random bytes: %v", err))
	}

	return base64.RawURLEncoding.EncodeToString(buf)
}

// sanitizeFilename 把客户端文件名清洗为文件系统安全的 basename：
// 去掉路径分隔符，空白和其余不安全字符替换为下划线，剥掉隐藏文件前缀.
func sanitizeFilename(name string) string {
	// 统一分隔符后取 basename，丢弃客户端路径
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, "._")

	if name == "" {
		name = "file"
	}

	return name
}

// extension 返回最后一个点之后的小写扩展名，没有扩展名时为空串.
func extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}

	return strings.ToLower(name[i+1:])
}

// storedFilename 组合防碰撞落盘名：{userID}_{随机段}_{safeName}.
// 随机段让同名重复上传互不覆盖，无需到存储层做存在性检查.
func storedFilename(userID uint, safeName string) string {
	return fmt.Sprintf("%d_%s_%s", userID, randomToken(storedNameRandomBytes), safeName)
}
