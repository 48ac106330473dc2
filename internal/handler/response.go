package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ashwinyue/faq-hub/internal/service/category"
	"github.com/ashwinyue/faq-hub/internal/service/faq"
	"github.com/ashwinyue/faq-hub/internal/service/feedback"
)

// ErrorBody 统一错误响应信封
type ErrorBody struct {
	Message          string            `json:"message"`
	Status           int               `json:"status"`
	Timestamp        time.Time         `json:"timestamp"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func init() {
	// 校验错误按 json 字段名报告，而不是 Go 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// success 成功响应
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// created 创建成功响应
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// noContent 无内容响应
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// notFound 未找到，响应体为空
func notFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

// badRequest 业务规则或参数错误
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, newErrorBody(c, http.StatusBadRequest, message, nil))
}

// bindError 请求体绑定/校验失败
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, newErrorBody(c, http.StatusBadRequest, "validation failed", fields))
		return
	}
	badRequest(c, "invalid request body")
}

// errorResponse 将服务级错误映射为响应
// 未知错误只记日志，不向调用方泄露内部细节
func errorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, faq.ErrFAQNotFound),
		errors.Is(err, feedback.ErrFAQNotFound),
		errors.Is(err, feedback.ErrFeedbackNotFound):
		notFound(c)
	case errors.Is(err, category.ErrDuplicateCategoryName),
		errors.Is(err, faq.ErrDuplicateQuestion),
		errors.Is(err, category.ErrCategoryHasFAQs):
		badRequest(c, err.Error())
	default:
		zap.L().Error("unhandled service error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError,
			newErrorBody(c, http.StatusInternalServerError, "internal server error", nil))
	}
}

// newErrorBody 构造错误信封
func newErrorBody(c *gin.Context, status int, message string, fields map[string]string) ErrorBody {
	return ErrorBody{
		Message:          message,
		Status:           status,
		Timestamp:        time.Now(),
		Path:             c.Request.URL.Path,
		ValidationErrors: fields,
	}
}

// validationMessage 单字段校验错误的提示文案
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is invalid"
	}
}
