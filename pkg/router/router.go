package router

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/socialnet-labs/backend/config"
	"github.com/socialnet-labs/backend/internal/model"
	"github.com/socialnet-labs/backend/pkg/authenticator"
	"github.com/socialnet-labs/backend/pkg/logger"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// HandlerFunc is the signature of domain methods registered as endpoints.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context, for
// example to attach the authenticated user id.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written.
type CloserFunc func(ctx context.Context)

type Router struct {
	Inner gin.IRouter

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc

	cfg               config.Configs
	logger            logger.Logger
	db                *gorm.DB
	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
	sessionStore      sessions.Store
	snowflakeNode     *snowflake.Node
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	node, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	return &Router{
		Inner:             gin.New(),
		cfg:               cfg,
		logger:            logger,
		db:                db,
		accessTokenEngine: authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken),
		sessionStore:      sessions.NewCookieStore([]byte(cfg.Session.Secret)),
		snowflakeNode:     node,
	}
}

// Branch derives a router sharing the same underlying engine but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

// Group derives a router rooted at pattern.
func (r *Router) Group(pattern string) *Router {
	clone := r.Branch()
	clone.Inner = r.Inner.Group(pattern)
	return clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.Inner.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.PUT(pattern, wrapHandler(r, http.MethodPut, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.DELETE(pattern, wrapHandler(r, http.MethodDelete, handler))
}

func (r *Router) baseContext(gctx *gin.Context) context.Context {
	ctx := context.Context(gctx.Request.Context())
	ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, gctx.Writer)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.accessTokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithSnowFlake(ctx, r.snowflakeNode)
	ctx = xcontext.WithError(ctx)
	ctx = xcontext.WithResponse(ctx)
	return ctx
}
