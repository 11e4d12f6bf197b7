package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := router.baseContext(gctx)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		func() {
			for _, before := range router.befores {
				newCtx, err := before(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}

			req, err := bindRequest[Request](gctx, method)
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
				return
			}

			resp, err := handler(ctx, req)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			xcontext.SetResponse(ctx, resp)

			for _, after := range router.afters {
				newCtx, err := after(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}
		}()

		writeResponse(ctx, gctx)
	}
}

func bindRequest[Request any](gctx *gin.Context, method string) (*Request, error) {
	req := new(Request)

	if len(gctx.Params) > 0 {
		if err := gctx.ShouldBindUri(req); err != nil {
			return nil, err
		}
	}

	switch method {
	case http.MethodGet:
		if err := gctx.ShouldBindQuery(req); err != nil {
			return nil, err
		}

	default:
		if gctx.ContentType() == "multipart/form-data" {
			if err := gctx.ShouldBind(req); err != nil {
				return nil, err
			}
		} else if gctx.Request.ContentLength > 0 {
			if err := gctx.ShouldBindJSON(req); err != nil {
				return nil, err
			}
		}
	}

	return req, nil
}

func writeResponse(ctx context.Context, gctx *gin.Context) {
	if err := xcontext.Error(ctx); err != nil {
		resp := newErrorResponse(err)
		gctx.JSON(httpStatus(resp.Code), resp)
		return
	}

	gctx.JSON(http.StatusOK, newResponse(xcontext.GetResponse(ctx)))
}
