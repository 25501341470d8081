package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ExecuteToolCall looks up and runs a tool by name. It never returns a Go
// error: unknown tools, handler failures and panics all come back as an
// {"error": message} result so one failing tool cannot abort the surrounding
// conversational turn. Callers branch on the presence of the "error" key.
func (t *Toolset) ExecuteToolCall(ctx context.Context, name string, args map[string]any) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("tool handler panicked",
				zap.String("tool", name), zap.Any("panic", r))
			result = errorResult(fmt.Sprintf("tool %s failed: %v", name, r))
		}
	}()

	tool, ok := t.handlers[name]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	res, err := tool.Run(ctx, args)
	if err != nil {
		return errorResult(err.Error())
	}
	return res
}

func errorResult(msg string) map[string]any {
	return map[string]any{"error": msg}
}
