package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminKeyHeader carries the admin API key.
const AdminKeyHeader = "X-Admin-Key"

type contextKey string

const isAdminKey contextKey = "is_admin"

// WithAdmin は context に管理者フラグをセットする
func WithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, isAdminKey, true)
}

// IsAdminFromContext は管理者として通過したリクエストかどうかを返す。未設定なら false。
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}

// AdminGate は管理用ルートを保護するミドルウェアを返す。
// apiKey が空なら OpenAdmin（全通過）、そうでなければ RequireAdminKey。
func AdminGate(apiKey string) func(http.Handler) http.Handler {
	if apiKey == "" {
		return OpenAdmin
	}
	return RequireAdminKey(apiKey)
}

// RequireAdminKey は X-Admin-Key ヘッダが apiKey と一致する場合のみ通す
func RequireAdminKey(apiKey string) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(AdminKeyHeader))
			if len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   "unauthorized",
					"message": "Nicht autorisiert.",
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context())))
		})
	}
}

// OpenAdmin は開発用ミドルウェア。キー未設定時に全リクエストを管理者として通す
func OpenAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context())))
	})
}
