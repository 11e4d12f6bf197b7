package middleware

import (
	"context"
	"strings"

	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/router"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
	useSession     bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

func (a *AuthVerifier) WithSession() *AuthVerifier {
	a.useSession = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			if token := getAccessToken(ctx); token != "" {
				info, err := xcontext.TokenEngine(ctx).Verify(token)
				if err != nil {
					return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
				}

				return xcontext.WithRequestUserID(ctx, info.ID), nil
			}
		}

		if a.useSession {
			session, err := xcontext.SessionStore(ctx).Get(
				xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
			if err == nil {
				if id, ok := session.Values["user_id"].(string); ok && id != "" {
					return xcontext.WithRequestUserID(ctx, id), nil
				}
			}
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
