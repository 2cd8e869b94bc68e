package service

import (
	"strings"
	"testing"
)

// TestSanitizeFilename 测试文件名清洗：丢弃路径、替换不安全字符、剥掉隐藏前缀.
func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my report (final).pdf", "my_report_final_.pdf"},
		{"../../etc/passwd.pdf", "passwd.pdf"},
		{`C:\Users\alice\photo.jpg`, "photo.jpg"},
		{".hidden.png", "hidden.png"},
		{"..", "file"},
		{"", "file"},
		{"文档.pdf", "pdf"},
	}

	for _, c := range cases {
		got := sanitizeFilename(c.in)
		if got != c.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestSanitizeFilenameNoSeparators 清洗结果不应含路径分隔符.
func TestSanitizeFilenameNoSeparators(t *testing.T) {
	for _, in := range []string{"a/b/c.pdf", `a\b\c.pdf`, "/abs/path.png", "../up.jpg"} {
		got := sanitizeFilename(in)
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("sanitizeFilename(%q) = %q still contains a separator", in, got)
		}
	}
}

// TestExtension 测试扩展名提取（小写化）.
func TestExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "pdf"},
		{"photo.JPG", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"trailing.", ""},
	}

	for _, c := range cases {
		got := extension(c.in)
		if got != c.want {
			t.Errorf("extension(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestStoredFilename 测试落盘名格式与防覆盖随机段.
func TestStoredFilename(t *testing.T) {
	name := storedFilename(42, "report.pdf")

	if !strings.HasPrefix(name, "42_") {
		t.Errorf("storedFilename should start with user id, got %q", name)
	}

	if !strings.HasSuffix(name, "_report.pdf") {
		t.Errorf("storedFilename should end with the safe name, got %q", name)
	}

	// 同名重复上传必须得到不同的落盘名
	other := storedFilename(42, "report.pdf")
	if name == other {
		t.Error("two stored filenames for the same input should differ")
	}
}

// TestRandomToken 测试令牌长度与唯一性.
func TestRandomToken(t *testing.T) {
	// 16 字节的 RawURL base64 编码长度为 22
	tok := randomToken(accessTokenBytes)
	if len(tok) != 22 {
		t.Errorf("token length = %d, want 22", len(tok))
	}

	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		tk := randomToken(accessTokenBytes)
		if _, dup := seen[tk]; dup {
			t.Fatalf("duplicate token generated: %s", tk)
		}

		seen[tk] = struct{}{}
	}
}
