package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"terraguide_api/models"
)

// WriteFormattedJSON 格式化JSON输出，使其更易读
func WriteFormattedJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ") // 使用4个空格缩进
	encoder.Encode(data)
}

// WriteSuccessResponse 写入成功响应
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSON(w, models.NewSuccessResponse(data))
}

// WriteErrorResponse 写入错误响应
func WriteErrorResponse(w http.ResponseWriter, code int, data interface{}) {
	WriteFormattedJSON(w, models.NewErrorResponse(code, data))
}

// WriteCustomErrorResponse 写入自定义错误消息的响应
func WriteCustomErrorResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteFormattedJSON(w, models.NewCustomErrorResponse(code, message, data))
}

// HandleServiceError 处理服务层错误的通用函数
func HandleServiceError(w http.ResponseWriter, err error, noDataCode int) {
	if IsSQLNoRowsError(err) {
		WriteErrorResponse(w, noDataCode, map[string]interface{}{})
	} else {
		WriteCustomErrorResponse(w, models.CodeServerError, err.Error(), map[string]interface{}{})
	}
}

// DecodeJSONBody 解析请求体JSON，失败时写入参数错误响应
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "body",
		})
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		WriteCustomErrorResponse(w, models.CodeInvalidParams, "解析请求体失败: "+err.Error(), map[string]interface{}{})
		return false
	}
	return true
}

// ValidateRequired 验证必要的字符串参数
func ValidateRequired(w http.ResponseWriter, name, value string) bool {
	if value == "" {
		WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": name,
		})
		return false
	}
	return true
}
