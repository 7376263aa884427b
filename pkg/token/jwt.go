// Package token 负责签发和校验管理接口使用的 JWT。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType 区分访问令牌和刷新令牌，防止 refresh token 被当作 access token 使用。
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const issuer = "orgchart"

// ErrTokenType 表示令牌类型与期望不符。
var ErrTokenType = errors.New("unexpected token type")

// JWTManager 负责生成和验证 JWT
type JWTManager struct {
	secretKey            []byte
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
	now                  func() time.Time
}

// Claims 在标准 Claims 之外携带用户名、角色和令牌类型。
// 每个令牌都带唯一的 jti，同一秒内重复签发也不会得到相同的字符串，
// 注销一个令牌不会误伤之后签发的令牌。
type Claims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func NewJWTManager(secretKey string, accessTokenDuration, refreshTokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:            []byte(secretKey),
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
		now:                  time.Now,
	}
}

// GenerateToken 生成访问令牌和刷新令牌
func (m *JWTManager) GenerateToken(username, role string) (accessToken, refreshToken string, err error) {
	now := m.now()
	accessToken, err = m.sign(username, role, TokenTypeAccess, now, m.accessTokenDuration)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = m.sign(username, role, TokenTypeRefresh, now, m.refreshTokenDuration)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (m *JWTManager) sign(username, role, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		Username:  username,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// VerifyToken 校验签名、有效期和签发者，只接受 HS256，防止 alg=none 等算法篡改。
func (m *JWTManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	return token.Claims.(*Claims), nil
}

// VerifyTokenType 在 VerifyToken 的基础上要求令牌类型匹配。
func (m *JWTManager) VerifyTokenType(tokenString, tokenType string) (*Claims, error) {
	claims, err := m.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrTokenType
	}
	return claims, nil
}

// Remaining 返回令牌距离过期还剩多久，已过期返回 0。
func (m *JWTManager) Remaining(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	d := claims.ExpiresAt.Time.Sub(m.now())
	if d < 0 {
		return 0
	}
	return d
}
