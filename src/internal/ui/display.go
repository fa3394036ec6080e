package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

var (
	mu sync.Mutex

	// Out 状态信息输出到 stderr，不干扰 stdout 上的 JSON/YAML
	Out io.Writer = os.Stderr
)

func PrintBanner() {
	banner := `
           _
  ___  ___| | ___
 / __|/ _ \ |/ _ \
 \__ \ (_) | | (_) |
 |___/\___/|_|\___/
`
	fmt.Fprintln(Out, Cyan+banner+Reset)
	fmt.Fprintln(Out, Gray+"  v1.0.0 - Stack-based Solidity declaration parser"+Reset)
	fmt.Fprintln(Out)
}

func clearLine() {
	fmt.Fprint(Out, "\r\033[K")
}

func LogSuccess(format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	clearLine()
	fmt.Fprintf(Out, Green+"[SUCCESS] "+Reset+format+"\n", a...)
}

func LogInfo(format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	clearLine()
	fmt.Fprintf(Out, Blue+"[INFO] "+Reset+format+"\n", a...)
}

func LogWarn(format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	clearLine()
	fmt.Fprintf(Out, Yellow+"[WARN] "+Reset+format+"\n", a...)
}

func LogError(format string, a ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	clearLine()
	fmt.Fprintf(Out, Red+"[ERROR] "+Reset+format+"\n", a...)
}

// LogParseFailure 打印解析失败的文件和原因
func LogParseFailure(file string, err error) {
	mu.Lock()
	defer mu.Unlock()
	clearLine()
	fmt.Fprintf(Out, Red+"[PARSE FAILED] "+Reset+"%s%s%s | %v\n", Bold, file, Reset, err)
}

func PrintStats(total, success, failed, declarations int, duration time.Duration) {
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, Gray+strings.Repeat("─", 50)+Reset)
	fmt.Fprintf(Out, "🏁 Parse Completed in %s\n", duration)
	fmt.Fprintf(Out, "📊 Files: %d | ✅ Success: %d | ❌ Failed: %d | 📦 Declarations: %d\n", total, success, failed, declarations)
	fmt.Fprintln(Out, Gray+strings.Repeat("─", 50)+Reset)
}
