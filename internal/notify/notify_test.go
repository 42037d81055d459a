package notify

import (
	"bytes"
	"strings"
	"testing"
)

// TestConsole は端末向けNotifierの出力を検証する。
func TestConsole(t *testing.T) {
	t.Parallel()

	t.Run("色付きで重要度ごとの色が使われること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		console := NewConsole(&buf, true)
		console.Notify("ログインしました", LevelSuccess)

		got := buf.String()
		if !strings.Contains(got, "\x1b[32m") {
			t.Errorf("出力に緑のエスケープシーケンスが含まれない: %q", got)
		}
		if !strings.Contains(got, "ログインしました") {
			t.Errorf("出力にメッセージが含まれない: %q", got)
		}
		if !strings.HasSuffix(got, "\x1b[0m\n") {
			t.Errorf("出力がリセットと改行で終わらない: %q", got)
		}
	})

	t.Run("未知の重要度はinfoの色になること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		console := NewConsole(&buf, true)
		console.Notify("なにか", Level("unknown"))

		if !strings.Contains(buf.String(), "\x1b[36m") {
			t.Errorf("出力にシアンのエスケープシーケンスが含まれない: %q", buf.String())
		}
	})

	t.Run("色なしではメッセージのみ出力されること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		console := NewConsole(&buf, false)
		console.Notify("セッションの有効期限が切れました", LevelDanger)

		if got := buf.String(); got != "セッションの有効期限が切れました\n" {
			t.Errorf("出力 = %q", got)
		}
	})
}
