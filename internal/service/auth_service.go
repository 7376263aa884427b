package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orgchart/internal/repository"
	"orgchart/pkg/log"
	"orgchart/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin 是唯一的角色，拥有修改组织树的权限。
const RoleAdmin = "ADMIN"

// AuthService 负责管理员登录、令牌刷新、注销和访问令牌校验。
// 管理员账号来自配置文件（用户名 + bcrypt 哈希），不落库。
type AuthService interface {
	Login(username, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)
	Logout(ctx context.Context, accessToken string) error
	Authenticate(ctx context.Context, accessToken string) (*token.Claims, error)
}

type authService struct {
	adminUsername     string
	adminPasswordHash string
	jwtManager        *token.JWTManager
	// blacklist 可以为 nil：此时不支持注销，校验时也跳过黑名单。
	blacklist repository.TokenBlacklist
}

func NewAuthService(adminUsername, adminPasswordHash string, jwtManager *token.JWTManager, blacklist repository.TokenBlacklist) AuthService {
	return &authService{
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtManager:        jwtManager,
		blacklist:         blacklist,
	}
}

// HashPassword 使用 bcrypt 对密码进行哈希，结果写入 auth.admin_password_hash。
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidInput
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *authService) Login(username, password string) (string, string, error) {
	if s.jwtManager == nil {
		return "", "", ErrInternal
	}
	username = strings.TrimSpace(username)
	// 未配置密码哈希时登录功能关闭，统一按凭证错误处理。
	if s.adminPasswordHash == "" || username != s.adminUsername {
		return "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtManager.GenerateToken(username, RoleAdmin)
	if err != nil {
		log.Errorf("Login: failed to generate token for %q: %v", username, err)
		return "", "", ErrInternal
	}
	return accessToken, refreshToken, nil
}

// Refresh 用刷新令牌换一对新令牌；配置了黑名单时旧的刷新令牌随即作废。
// 作废通过一次 SETNX 完成，并发使用同一个刷新令牌时只有一方能换到新令牌。
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if s.jwtManager == nil {
		return "", "", ErrInternal
	}
	claims, err := s.jwtManager.VerifyTokenType(refreshToken, token.TokenTypeRefresh)
	if err != nil {
		return "", "", ErrUnauthorized
	}
	if s.blacklist != nil {
		added, err := s.blacklist.Add(ctx, refreshToken, s.jwtManager.Remaining(claims))
		if err != nil {
			log.Errorf("Refresh: failed to revoke old refresh token: %v", err)
			return "", "", ErrInternal
		}
		if !added {
			log.Warnw("Refresh: refresh token reused", "username", claims.Username)
			return "", "", ErrUnauthorized
		}
	}

	accessToken, newRefreshToken, err := s.jwtManager.GenerateToken(claims.Username, claims.Role)
	if err != nil {
		log.Errorf("Refresh: failed to generate token for %q: %v", claims.Username, err)
		return "", "", ErrInternal
	}
	return accessToken, newRefreshToken, nil
}

// Logout 把访问令牌加入黑名单，有效期与令牌剩余时间一致。
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if s.blacklist == nil {
		return ErrBlacklistUnavailable
	}
	claims, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return err
	}
	if _, err := s.blacklist.Add(ctx, accessToken, s.jwtManager.Remaining(claims)); err != nil {
		log.Errorf("Logout: failed to blacklist token: %v", err)
		return ErrInternal
	}
	return nil
}

// Authenticate 校验访问令牌：签名、有效期、类型必须是 access、角色必须是管理员、且未被注销。
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*token.Claims, error) {
	if s.jwtManager == nil {
		return nil, ErrInternal
	}
	claims, err := s.jwtManager.VerifyTokenType(accessToken, token.TokenTypeAccess)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.Role != RoleAdmin {
		return nil, ErrUnauthorized
	}
	if err := s.checkBlacklist(ctx, accessToken); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *authService) checkBlacklist(ctx context.Context, tok string) error {
	if s.blacklist == nil {
		return nil
	}
	revoked, err := s.blacklist.Contains(ctx, tok)
	if err != nil {
		log.Errorf("failed to query token blacklist: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if revoked {
		return ErrUnauthorized
	}
	return nil
}

// IsAuthError 判断错误是否属于认证失败（而不是内部错误）。
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}
