package notify

import (
	"fmt"
	"io"
	"sync"
)

// Level は通知の重要度。
type Level string

const (
	// LevelSuccess は操作の成功を表す。
	LevelSuccess Level = "success"
	// LevelDanger はエラーや警告を表す。
	LevelDanger Level = "danger"
	// LevelInfo は補足情報を表す。
	LevelInfo Level = "info"
)

// Notifier はユーザーへ通知を表示するインタフェース。
type Notifier interface {
	// Notify はメッセージを指定した重要度で表示する。
	Notify(message string, level Level)
}

// ansiColors は重要度ごとのANSIエスケープシーケンス。
var ansiColors = map[Level]string{
	LevelSuccess: "\x1b[32m", // 緑
	LevelDanger:  "\x1b[31m", // 赤
	LevelInfo:    "\x1b[36m", // シアン
}

const ansiReset = "\x1b[0m"

// Console は端末へ色付きで通知を表示するNotifier。
type Console struct {
	// writer は出力先。通常はos.Stderr。
	writer io.Writer
	// color がfalseの場合は色付けしない。
	color bool
	mu    sync.Mutex
}

// NewConsole は端末向けのNotifierを生成する。
// colorがfalseの場合、パイプ出力などを想定して色付けを無効にする。
func NewConsole(writer io.Writer, color bool) *Console {
	return &Console{writer: writer, color: color}
}

// Notify はメッセージを1行で表示する。
func (c *Console) Notify(message string, level Level) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.color {
		fmt.Fprintln(c.writer, message)
		return
	}
	color, ok := ansiColors[level]
	if !ok {
		color = ansiColors[LevelInfo]
	}
	fmt.Fprintf(c.writer, "%s%s%s\n", color, message, ansiReset)
}

// Discard は何も表示しないNotifier。テストや静音モードで使用する。
type Discard struct{}

// Notify は何もしない。
func (Discard) Notify(string, Level) {}
