package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/docdrop/pkg/rule"
)

// registerForm 用于测试 ValidateStruct.
type registerForm struct {
	Name  string `rule:"required"`
	Email string `rule:"omitempty,email"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	// 有效：有名称，无邮箱
	if err := rule.ValidateStruct(registerForm{Name: "Alice"}); err != nil {
		t.Errorf("expected no error for valid form, got %v", err)
	}

	// 有效：名称加合法邮箱
	if err := rule.ValidateStruct(registerForm{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Errorf("expected no error for valid form with email, got %v", err)
	}

	// 无效：缺少名称
	if err := rule.ValidateStruct(registerForm{Email: "alice@example.com"}); err == nil {
		t.Error("expected error for missing name, got nil")
	}

	// 无效：邮箱格式错误
	if err := rule.ValidateStruct(registerForm{Name: "Alice", Email: "not-an-email"}); err == nil {
		t.Error("expected error for invalid email, got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	// 有效 email
	if err := rule.ValidateVar("test@example.com", "required,email"); err != nil {
		t.Errorf("expected no error for valid email, got %v", err)
	}

	// 无效 email
	if err := rule.ValidateVar("invalid-email", "required,email"); err == nil {
		t.Error("expected error for invalid email, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	err := rule.RegisterValidation("is_pdf", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "pdf"
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	if err := rule.ValidateVar("pdf", "is_pdf"); err != nil {
		t.Errorf("expected no error for matching custom rule, got %v", err)
	}

	if err := rule.ValidateVar("exe", "is_pdf"); err == nil {
		t.Error("expected error for non-matching custom rule, got nil")
	}
}
