package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/socialnet-labs/backend/pkg/router"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.GetResponse(ctx).(AccessTokenResponse)
		if ok {
			cfg := xcontext.Configs(ctx).Auth.AccessToken
			http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
				Name:     cfg.Name,
				Value:    tokenResp.AccessTokenInfo(),
				Domain:   "",
				Path:     "/",
				Expires:  time.Now().Add(cfg.Expiration),
				Secure:   true,
				HttpOnly: false,
			})
		}

		return ctx, nil
	}
}
