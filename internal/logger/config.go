package logger

import (
	"os"

	"github.com/caarlos0/env"
)

// LogConfig chứa cấu hình cho hệ thống logging.
type LogConfig struct {
	// Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL"`

	// Format: json, text
	Format string `env:"LOG_FORMAT"`

	// Output: file, stdout, both
	Output string `env:"LOG_OUTPUT"`

	// Cấu hình xoay vòng file log
	MaxSize    int  `env:"LOG_MAX_SIZE"`    // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS"` // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE"`     // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS"`    // Nén file cũ

	// Đường dẫn file log
	LogPath   string `env:"LOG_PATH"`
	AppFile   string `env:"LOG_APP_FILE"`
	AuditFile string `env:"LOG_AUDIT_FILE"`
	ErrorFile string `env:"LOG_ERROR_FILE"`

	// Filter log theo tiêu chí, dạng "a,b,c" hoặc "*" cho tất cả
	FilterModules     string `env:"LOG_FILTER_MODULES"`
	FilterCollections string `env:"LOG_FILTER_COLLECTIONS"`
	FilterLogTypes    string `env:"LOG_FILTER_LOG_TYPES"`
}

// DefaultConfig trả về cấu hình mặc định theo GO_ENV,
// sau đó áp các biến môi trường LOG_* đè lên nếu có.
func DefaultConfig() *LogConfig {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	config := &LogConfig{
		Level:      "info",
		Format:     "json",
		Output:     "both",
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
		LogPath:    "./logs",
		AppFile:    "app.log",
		AuditFile:  "audit.log",
		ErrorFile:  "error.log",
	}

	// Môi trường dev ưu tiên log dễ đọc
	if goEnv == "development" {
		config.Level = "debug"
		config.Format = "text"
	}

	// env.Parse chỉ đè các field có biến môi trường tương ứng
	_ = env.Parse(config)

	return config
}
