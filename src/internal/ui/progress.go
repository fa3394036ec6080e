package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const Clear = "\033[2K\r"

type ProgressBar struct {
	total       int
	current     int
	failed      int
	startTime   time.Time
	description string
	mu          sync.Mutex
	width       int
}

func NewProgressBar(total int, description string) *ProgressBar {
	return &ProgressBar{
		total:       total,
		startTime:   time.Now(),
		description: description,
		width:       40, // 进度条长度
	}
}

func (pb *ProgressBar) Increment() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.current++
	pb.render()
}

// AddFailure 记录一个解析失败的文件，下次渲染时显示
func (pb *ProgressBar) AddFailure() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.failed++
}

func (pb *ProgressBar) Finish() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	// 确保进度满格
	pb.current = pb.total
	fmt.Fprint(Out, Clear)
	pb.render()
	fmt.Fprintln(Out) // 换行
}

func (pb *ProgressBar) render() {
	percent := 1.0
	if pb.total > 0 {
		percent = float64(pb.current) / float64(pb.total)
	}
	if percent > 1.0 {
		percent = 1.0
	}

	filled := int(float64(pb.width) * percent)
	bar := strings.Repeat("=", filled)
	if filled < pb.width {
		bar += ">" + strings.Repeat(".", pb.width-filled-1)
	}

	elapsed := time.Since(pb.startTime).Round(time.Millisecond)

	barColor := Cyan
	if percent >= 1.0 {
		barColor = Green
	}
	failColor := Green
	if pb.failed > 0 {
		failColor = Red
	}

	mu.Lock()
	fmt.Fprintf(Out, "%s%s %s[%s]%s %.0f%% | %d/%d | %s | Failed: %s%d%s",
		Clear,
		pb.description,
		barColor, bar, Reset,
		percent*100,
		pb.current, pb.total,
		elapsed,
		failColor, pb.failed, Reset,
	)
	mu.Unlock()
}
