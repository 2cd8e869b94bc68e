package types

// RegisterForm 注册表单. email 为空时按未提供处理.
type RegisterForm struct {
	Name  string `form:"name"  rule:"required"`
	Email string `form:"email" rule:"omitempty,email"`
}
