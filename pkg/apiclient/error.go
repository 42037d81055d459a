package apiclient

import (
	"encoding/json"
	"fmt"
)

// fallbackErrorMessage はエラーボディからメッセージを抽出できなかった場合の既定文言。
const fallbackErrorMessage = "An API error occurred."

// Error はAPIが返したエラーを表す。
// メッセージはエラーボディから優先順位に従って抽出された、人間可読な文字列。
type Error struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Message はエラーメッセージ。
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *Error) Error() string {
	return e.Message
}

// newHTTPError はエラーボディをパースできない場合の汎用エラーを生成する。
func newHTTPError(statusCode int) *Error {
	return &Error{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP error %d", statusCode),
	}
}

// messageExtractor はエラーボディからメッセージの抽出を試みる関数。
type messageExtractor func(payload map[string]any) (string, bool)

// messageExtractors はエラーメッセージの抽出関数を優先順位順に並べたもの。
// detail → error → non_field_errors の先頭要素、の順で最初に見つかった
// ものを採用する。Django REST Frameworkのエラーボディ形式に対応する。
var messageExtractors = []messageExtractor{
	extractField("detail"),
	extractField("error"),
	extractNonFieldErrors,
}

// extractField は指定フィールドの文字列値を抽出する関数を返す。
func extractField(field string) messageExtractor {
	return func(payload map[string]any) (string, bool) {
		message, ok := payload[field].(string)
		return message, ok
	}
}

// extractNonFieldErrors はnon_field_errors配列の先頭要素を抽出する。
func extractNonFieldErrors(payload map[string]any) (string, bool) {
	items, ok := payload["non_field_errors"].([]any)
	if !ok || len(items) == 0 {
		return "", false
	}
	message, ok := items[0].(string)
	return message, ok
}

// parseAPIError はエラーレスポンスのボディからErrorを構築する。
// ボディが有効なJSONオブジェクトでない場合は "HTTP error <status>" を、
// どの抽出関数にも該当しない場合は既定文言をメッセージとする。
func parseAPIError(statusCode int, body []byte) *Error {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return newHTTPError(statusCode)
	}

	// オブジェクト以外のJSON（配列等）はパース成功として既定文言を使う
	payload, _ := decoded.(map[string]any)

	for _, extract := range messageExtractors {
		if message, ok := extract(payload); ok {
			return &Error{StatusCode: statusCode, Message: message}
		}
	}
	return &Error{StatusCode: statusCode, Message: fallbackErrorMessage}
}
