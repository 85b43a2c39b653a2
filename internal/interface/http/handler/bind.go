package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bind 绑定请求参数
// 有请求体时按JSON解析（GET请求也一样）；没有请求体时读查询参数
func bind(c *gin.Context, req interface{}) error {
	var err error
	if c.Request.ContentLength != 0 {
		err = c.ShouldBindJSON(req)
	} else {
		err = c.ShouldBindQuery(req)
	}
	if err != nil {
		return apperrors.WithCause(apperrors.ErrCodeBindError, err, "请求格式错误: "+err.Error())
	}
	return nil
}
