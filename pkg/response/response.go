package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// 设计说明：
// 1. 写操作成功返回200、空响应体
// 2. 查询成功直接返回JSON对象（不包信封）
// 3. 失败返回纯文本错误信息，HTTP状态码由AppError.Code决定
// 4. 内部错误(AppError.Err)只写日志，客户端只看到Message

// OK 成功、无响应体
func OK(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Success 成功、返回JSON
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	if err := uc.Execute(ctx, req); err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := HTTPStatus(appErr.Code)

	log := zerolog.Ctx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(appErr.Err).Int("code", appErr.Code).Msg(appErr.Message)
	} else {
		log.Warn().Int("code", appErr.Code).Msg(appErr.Message)
	}
	metrics.IncCounterVec(metrics.RequestErrorsTotal, prometheus.Labels{"code": strconv.Itoa(appErr.Code)})

	c.String(status, appErr.Message)
}

// HTTPStatus 业务错误码 → HTTP状态码
// - 409xx 参数错误        → 400
// - 404xx 资源不存在      → 404
// - 400xx 已存在/已发货   → 409
// - 其它                  → 500
func HTTPStatus(code int) int {
	switch {
	case code >= 40900 && code < 41000:
		return http.StatusBadRequest
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40000 && code < 40100:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
