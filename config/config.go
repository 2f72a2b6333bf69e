// Package config đọc cấu hình service từ file env theo môi trường (GO_ENV).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa toàn bộ cấu hình tĩnh cần thiết để chạy service.
type Configuration struct {
	Address   string `env:"ADDRESS" envDefault:":8080"` // Địa chỉ server
	JwtSecret string `env:"JWT_SECRET,required"`        // Bí mật ký token khách hàng

	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // URI kết nối MongoDB
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Tên database của storefront

	// Marketplace upstream (API sàn thương mại)
	Marketplace_BaseURL string `env:"MARKETPLACE_BASE_URL,required"`         // Base URL API của sàn
	Marketplace_ApiKey  string `env:"MARKETPLACE_API_KEY,required"`          // API key cấp cho storefront
	Marketplace_Timeout int    `env:"MARKETPLACE_TIMEOUT" envDefault:"10"`   // Timeout gọi sàn (giây)
	CatalogSyncOnBoot   bool   `env:"CATALOG_SYNC_ON_BOOT" envDefault:"false"` // Đồng bộ catalog khi khởi động

	// CORS
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials

	// Rate limit
	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`      // Số request tối đa trong window
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`    // Thời gian window (giây)
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Bật/tắt rate limiting

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn file private key (.key)

	// SMTP gửi email xác nhận đơn hàng (optional, bỏ trống để tắt)
	SMTP_Host      string `env:"SMTP_HOST"`                // SMTP host
	SMTP_Port      int    `env:"SMTP_PORT" envDefault:"587"` // SMTP port
	SMTP_Username  string `env:"SMTP_USERNAME"`            // SMTP username
	SMTP_Password  string `env:"SMTP_PASSWORD"`            // SMTP password
	SMTP_FromName  string `env:"SMTP_FROM_NAME" envDefault:"Taobao UI Prototype"` // Tên người gửi
	SMTP_FromEmail string `env:"SMTP_FROM_EMAIL"`          // Email người gửi
}

// getEnvPath trả về đường dẫn file env theo môi trường, tìm thư mục config/env
// bằng cách đi ngược từ thư mục hiện tại lên gốc.
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Dùng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env của môi trường hiện tại.
// Trả về nil nếu thiếu file env hoặc thiếu biến bắt buộc.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Dùng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
