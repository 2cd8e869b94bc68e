package model

import "time"

// Document 文档模型. 一个用户拥有多个文档，文档创建后不再变更.
type Document struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	// User 外键关联，文档不能脱离用户存在
	User User `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	// StoredName 服务端生成的落盘文件名，格式 {userID}_{random}_{safeName}
	StoredName   string `gorm:"size:512;not null" json:"stored_name"`
	OriginalName string `gorm:"size:512;not null" json:"original_name"`
	// Token 高熵随机串，唯一索引是防碰撞的最终保障
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// QRCodeName 返回该文档二维码图片的文件名.
func (d *Document) QRCodeName() string {
	return d.Token + ".png"
}

// CreatedAtISO 创建时间的 UTC ISO-8601 表示，模板展示用.
func (d *Document) CreatedAtISO() string {
	return d.CreatedAt.UTC().Format(time.RFC3339)
}
