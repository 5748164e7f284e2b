// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/auth/access-tokenのリクエストを表します。
// OAuth2のパスワードフォームに合わせ、usernameにはメールアドレスを指定します。
type LoginReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenRes is returned by a successful login.
type TokenRes struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	TokenExpires string `json:"token_expires"`
}

// VerifyTokenReq is the body of /auth/verify-token.
type VerifyTokenReq struct {
	Token string `json:"token" binding:"required"`
}

// VerifyTokenRes reports whether a token is valid.
type VerifyTokenRes struct {
	Valid bool `json:"valid"`
}
