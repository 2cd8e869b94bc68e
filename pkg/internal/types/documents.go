package types

import "time"

// DocumentInfo 模板渲染用的文档视图.
type DocumentInfo struct {
	ID           uint      `json:"id"`
	OwnerName    string    `json:"owner_name"`
	StoredName   string    `json:"stored_name"`
	OriginalName string    `json:"original_name"`
	Token        string    `json:"token"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreatedAtISO 创建时间的 UTC ISO-8601 表示.
func (d *DocumentInfo) CreatedAtISO() string {
	return d.CreatedAt.UTC().Format(time.RFC3339)
}

// UploadResult 上传工作流的结果，handler 据此重定向到确认页.
type UploadResult struct {
	DocumentID uint   `json:"document_id"`
	StoredName string `json:"stored_name"`
	Token      string `json:"token"`
	// Link 二维码编码的公开解析链接
	Link string `json:"link"`
}
