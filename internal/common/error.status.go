// Package common chứa các thành phần dùng chung: mã trạng thái HTTP, mã lỗi phân loại
// và kiểu Error chuẩn cho toàn bộ service.
package common

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ====================================
// HTTP STATUS CODE
// ====================================

const (
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công, không có dữ liệu trả về

	StatusBadRequest          = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized        = 401 // Chưa xác thực
	StatusForbidden           = 403 // Không có quyền truy cập
	StatusNotFound            = 404 // Không tìm thấy tài nguyên
	StatusConflict            = 409 // Xung đột dữ liệu
	StatusUnprocessable       = 422 // Dữ liệu hợp lệ về cú pháp nhưng không xử lý được
	StatusTooManyRequests     = 429 // Vượt quá giới hạn request
	StatusInternalServerError = 500 // Lỗi nội bộ server
	StatusServiceUnavailable  = 503 // Dịch vụ tạm thời không khả dụng
	StatusBadGateway          = 502 // Upstream trả lỗi
	StatusGatewayTimeout      = 504 // Upstream không phản hồi kịp
)

// ====================================
// THÔNG ĐIỆP CHUẨN
// ====================================

const (
	MsgSuccess         = "Thao tác thành công"
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgNotFound        = "Không tìm thấy dữ liệu"
	MsgInternalError   = "Lỗi hệ thống, vui lòng thử lại sau"
	MsgTokenMissing    = "Thiếu token xác thực"
	MsgTokenInvalid    = "Token không hợp lệ"
	MsgTokenExpired    = "Token đã hết hạn"
	MsgUpstreamError   = "Sàn thương mại không phản hồi, vui lòng thử lại"
)

// ====================================
// MÃ LỖI PHÂN LOẠI
// ====================================

// ErrorCode định nghĩa một mã lỗi có phân loại, dùng để client phân nhánh xử lý
// mà không phải parse message.
type ErrorCode struct {
	Code        string // Mã lỗi, ví dụ: VAL_001
	Category    string // Nhóm lỗi: SYS, AUTH, VAL, DB, BIZ, UPS
	SubCategory string // Nhóm con, ví dụ: format, required
	Description string // Mô tả ngắn cho dev
}

var (
	// SYS - Lỗi hệ thống
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "SYS", SubCategory: "internal", Description: "Lỗi nội bộ không xác định"}

	// AUTH - Lỗi xác thực
	ErrCodeAuth             = ErrorCode{Code: "AUTH", Category: "AUTH", SubCategory: "general", Description: "Lỗi xác thực chung"}
	ErrCodeAuthTokenMissing = ErrorCode{Code: "AUTH_001", Category: "AUTH", SubCategory: "token", Description: "Request không kèm token"}
	ErrCodeAuthTokenInvalid = ErrorCode{Code: "AUTH_002", Category: "AUTH", SubCategory: "token", Description: "Token sai định dạng hoặc sai chữ ký"}
	ErrCodeAuthTokenExpired = ErrorCode{Code: "AUTH_003", Category: "AUTH", SubCategory: "token", Description: "Token đã hết hạn"}

	// VAL - Lỗi dữ liệu đầu vào
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "VAL", SubCategory: "input", Description: "Dữ liệu đầu vào không hợp lệ"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "VAL", SubCategory: "format", Description: "Dữ liệu sai định dạng"}

	// DB - Lỗi cơ sở dữ liệu
	ErrCodeDatabase          = ErrorCode{Code: "DB_001", Category: "DB", SubCategory: "general", Description: "Lỗi thao tác cơ sở dữ liệu"}
	ErrCodeDatabaseNotFound  = ErrorCode{Code: "DB_002", Category: "DB", SubCategory: "notfound", Description: "Không tìm thấy document"}
	ErrCodeDatabaseDuplicate = ErrorCode{Code: "DB_003", Category: "DB", SubCategory: "duplicate", Description: "Trùng khóa unique"}

	// BIZ - Lỗi nghiệp vụ
	ErrCodeBusiness     = ErrorCode{Code: "BIZ_001", Category: "BIZ", SubCategory: "general", Description: "Vi phạm quy tắc nghiệp vụ"}
	ErrCodeInvalidState = ErrorCode{Code: "BIZ_002", Category: "BIZ", SubCategory: "state", Description: "Thao tác không hợp lệ với trạng thái hiện tại"}

	// UPS - Lỗi gọi sàn thương mại (upstream)
	ErrCodeUpstreamTransport = ErrorCode{Code: "UPS_001", Category: "UPS", SubCategory: "transport", Description: "Không kết nối được tới sàn hoặc sàn trả lỗi"}
	ErrCodeUpstreamTimeout   = ErrorCode{Code: "UPS_002", Category: "UPS", SubCategory: "timeout", Description: "Sàn không phản hồi trong thời gian cho phép"}
	ErrCodeUpstreamDecode    = ErrorCode{Code: "UPS_003", Category: "UPS", SubCategory: "decode", Description: "Response của sàn sai định dạng"}
)

// ====================================
// KIỂU ERROR CHUẨN
// ====================================

// Error là kiểu lỗi chuẩn của service, mang theo mã phân loại, thông điệp
// cho client và HTTP status tương ứng.
type Error struct {
	Code       ErrorCode   // Mã lỗi phân loại
	Message    string      // Thông điệp trả về client
	StatusCode int         // HTTP status trả về
	Details    interface{} // Chi tiết bổ sung (lỗi gốc, field sai...)
}

// Error trả về chuỗi mô tả lỗi, implement interface error.
func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
}

// Is so sánh hai Error theo mã lỗi, dùng được với errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code.Code == t.Code.Code
	}
	return false
}

// NewError tạo một Error mới với mã, thông điệp, HTTP status và chi tiết kèm theo.
func NewError(code ErrorCode, message string, statusCode int, details interface{}) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// ====================================
// CÁC LỖI DÙNG SẴN
// ====================================

var (
	ErrNotFound      = NewError(ErrCodeDatabaseNotFound, MsgNotFound, StatusNotFound, nil)
	ErrDuplicate     = NewError(ErrCodeDatabaseDuplicate, "Dữ liệu đã tồn tại", StatusConflict, nil)
	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Dữ liệu sai định dạng", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu trường bắt buộc", StatusBadRequest, nil)
	ErrInvalidState  = NewError(ErrCodeInvalidState, "Trạng thái hiện tại không cho phép thao tác này", StatusConflict, nil)

	ErrTokenMissing = NewError(ErrCodeAuthTokenMissing, MsgTokenMissing, StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthTokenInvalid, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrTokenExpired = NewError(ErrCodeAuthTokenExpired, MsgTokenExpired, StatusUnauthorized, nil)

	ErrUpstreamUnavailable = NewError(ErrCodeUpstreamTransport, MsgUpstreamError, StatusBadGateway, nil)
	ErrUpstreamTimeout     = NewError(ErrCodeUpstreamTimeout, "Sàn thương mại phản hồi quá chậm, vui lòng thử lại", StatusGatewayTimeout, nil)
)

// IsUpstreamError kiểm tra một error có thuộc nhóm lỗi gọi sàn (UPS) hay không.
// Các tầng trên dựa vào đây để quyết định hoàn tác về trạng thái ổn định trước đó.
func IsUpstreamError(err error) bool {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code.Category == "UPS"
	}
	return false
}

// ====================================
// CHUYỂN ĐỔI LỖI MONGODB
// ====================================

// IsDuplicateKeyError kiểm tra lỗi trùng khóa unique của MongoDB.
func IsDuplicateKeyError(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return strings.Contains(err.Error(), "E11000")
}

// IsNetworkError kiểm tra lỗi kết nối mạng tới MongoDB.
func IsNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return mongo.IsNetworkError(err)
}

// ConvertMongoError chuyển lỗi thô của mongo driver về Error chuẩn của service.
// ErrNotFound đi qua nguyên vẹn để các tầng trên so sánh bằng errors.Is.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã được chuẩn hóa thì giữ nguyên
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if IsDuplicateKeyError(err) {
		return ErrDuplicate
	}

	if mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabase, "Thao tác cơ sở dữ liệu quá thời gian cho phép", StatusInternalServerError, err)
	}

	if IsNetworkError(err) {
		return NewError(ErrCodeDatabase, "Không kết nối được cơ sở dữ liệu", StatusServiceUnavailable, err)
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabase, fmt.Sprintf("Lỗi MongoDB (mã %d)", cmdErr.Code), StatusInternalServerError, err)
	}

	return NewError(ErrCodeDatabase, "Lỗi thao tác cơ sở dữ liệu", StatusInternalServerError, err)
}
