package logger

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Init инициализирует глобальный логгер.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	Log = logrus.New()

	// 1. Уровень логирования из переменной окружения. По умолчанию "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер: "json" для продакшена, "text" для разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	// 3. Куда писать: stdout и, если задан LOG_FILE, файл с ротацией.
	Log.SetOutput(output(os.Getenv("LOG_FILE")))
}

func output(path string) io.Writer {
	if path == "" {
		return os.Stdout
	}
	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    envInt("LOG_FILE_MAX_MB", 50),
		MaxBackups: envInt("LOG_FILE_BACKUPS", 5),
		MaxAge:     envInt("LOG_FILE_MAX_AGE_DAYS", 14),
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, rotating)
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
