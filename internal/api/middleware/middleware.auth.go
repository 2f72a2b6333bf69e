package middleware

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/tykealy/taobao-ui-prototype/internal/common"
	"github.com/tykealy/taobao-ui-prototype/internal/global"
	"github.com/tykealy/taobao-ui-prototype/internal/logger"
	"github.com/tykealy/taobao-ui-prototype/internal/utility"
)

// CustomerClaims chứa data được mã hóa trong JWT token của khách hàng.
// Token do marketplace phát hành khi khách đăng nhập, backend chỉ verify chữ ký.
type CustomerClaims struct {
	CustomerID string   `json:"customerId"`
	Email      string   `json:"email"`
	Scopes     []string `json:"scopes,omitempty"` // Scope quản trị do marketplace cấp (vd: catalog)
	jwt.StandardClaims
}

// AuthManager quản lý xác thực khách hàng
type AuthManager struct {
	jwtSecret string
	Cache     *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	if global.MongoDB_ServerConfig == nil {
		return nil, fmt.Errorf("server config chưa được khởi tạo")
	}

	newManager := new(AuthManager)
	newManager.jwtSecret = global.MongoDB_ServerConfig.JwtSecret

	// Khởi tạo cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// VerifyToken kiểm tra chữ ký và hạn của token, trả về claims nếu hợp lệ.
// Claims hợp lệ được cache theo token string để giảm chi phí parse.
func (am *AuthManager) VerifyToken(token string) (*CustomerClaims, error) {
	cacheKey := "customer_claims:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(*CustomerClaims), nil
	}

	claims := &CustomerClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không được hỗ trợ: %v", t.Header["alg"])
		}
		return []byte(am.jwtSecret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	if !parsed.Valid || claims.CustomerID == "" {
		return nil, common.ErrTokenInvalid
	}

	am.Cache.Set(cacheKey, claims)
	return claims, nil
}

// CreateCustomerToken tạo JWT token cho khách hàng với secret và thời gian sống cho trước.
// Dùng trong test và tooling, production token do marketplace phát hành.
func CreateCustomerToken(secret, customerID, email string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CustomerClaims{
		CustomerID: customerID,
		Email:      email,
		Scopes:     scopes,
		StandardClaims: jwt.StandardClaims{
			Subject:   customerID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// AuthMiddleware middleware xác thực khách hàng cho Fiber.
// requireScope khác rỗng thì token còn phải mang scope đó trong claim scopes
// (các route quản trị catalog), rỗng thì chỉ cần token hợp lệ.
// Token hợp lệ sẽ lưu customer_id, customer_email và bearer_token vào Locals
// để handler và service phía sau sử dụng (bearer_token được chuyển tiếp lên marketplace).
func AuthMiddleware(requireScope string) fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		claims, err := authManager.VerifyToken(token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token không hợp lệ")
			HandleErrorResponse(c, err)
			return nil
		}

		// Kiểm tra token có mang scope cần thiết không (route quản trị)
		if requireScope != "" && !utility.Contains(claims.Scopes, requireScope) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"customer_id":    claims.CustomerID,
				"required_scope": requireScope,
				"path":           c.Path(),
			}).Warn("❌ [AUTH] Token không mang scope cần thiết")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuth,
				"Không có quyền truy cập",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin khách hàng vào context
		c.Locals("customer_id", claims.CustomerID)
		c.Locals("customer_email", claims.Email)
		c.Locals("bearer_token", token)

		return c.Next()
	}
}
