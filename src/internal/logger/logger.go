package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	fileLogger  *log.Logger
	logFile     *os.File
	initialized bool
	verbose     bool
	consoleMu   sync.Mutex

	// console 为 stderr，stdout 只留给解析结果
	console io.Writer = os.Stderr
)

// helloq InitLogger 在 dir 下创建本次运行的日志文件
func InitLogger(dir string) error {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(dir, fmt.Sprintf("parse_%s.log", timestamp))

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	fileLogger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	initialized = true

	fmt.Fprintf(console, "📝 Log file created: %s\n", logPath)
	return nil
}

func Close() {
	if logFile != nil {
		logFile.Close()
	}
	logFile = nil
	fileLogger = nil
	initialized = false
}

// SetVerbose Debug 日志同时输出到控制台
func SetVerbose(v bool) {
	consoleMu.Lock()
	verbose = v
	consoleMu.Unlock()
}

// SetOutput 替换控制台输出（测试用）
func SetOutput(w io.Writer) {
	consoleMu.Lock()
	console = w
	consoleMu.Unlock()
}

func format(level, f string, v ...interface{}) string {
	msg := fmt.Sprintf(f, v...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	return "[" + level + "] " + msg
}

func Info(f string, v ...interface{}) {
	emit(true, "INFO", f, v...)
}

func Debug(f string, v ...interface{}) {
	consoleMu.Lock()
	show := verbose
	consoleMu.Unlock()
	emit(show, "DEBUG", f, v...)
}

func Error(f string, v ...interface{}) {
	emit(true, "ERROR", f, v...)
}

func Warn(f string, v ...interface{}) {
	emit(true, "WARN", f, v...)
}

func emit(toConsole bool, level, f string, v ...interface{}) {
	msg := format(level, f, v...)

	consoleMu.Lock()
	defer consoleMu.Unlock()
	if initialized {
		fileLogger.Output(3, msg)
	}
	if toConsole {
		fmt.Fprint(console, msg)
	}
}

func GetLogWriter() io.Writer {
	return logFile
}
