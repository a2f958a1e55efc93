package notifier

import (
	"context"
)

// Transport 告警投递通道。Send 返回 nil 即认为消息已送达，
// 调用方据此推进只告警一次的状态机。
type Transport interface {
	Send(ctx context.Context, text string) error
}
