package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"
	"github.com/socialnet-labs/backend/internal/middleware"
	"github.com/socialnet-labs/backend/pkg/router"
	"github.com/socialnet-labs/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadStorage()
	s.loadRedisClient()
	s.loadSearcher()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	defer s.searcher.Close()

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
	}).Handler(s.router.Handler())

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: handler,
	}

	log.Printf("Starting server on %s\n", cfg.Address())
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	cfg := xcontext.Configs(s.ctx)
	s.router = router.New(xcontext.DB(s.ctx), cfg, xcontext.Logger(s.ctx))
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	authRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/auth/register", s.authDomain.Register)
		router.POST(authRouter, "/auth/login", s.authDomain.Login)
	}

	// Public read API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/communities", s.communityDomain.GetList)
		router.GET(publicRouter, "/communities/search", s.communityDomain.Search)
		router.GET(publicRouter, "/communities/popular", s.communityDomain.GetPopular)
		router.GET(publicRouter, "/communities/recommended", s.communityDomain.GetRecommended)
		router.GET(publicRouter, "/communities/:id", s.communityDomain.Get)
		router.GET(publicRouter, "/communities/:id/members", s.communityDomain.GetMembers)
		router.GET(publicRouter, "/communities/:id/posts", s.communityDomain.GetPosts)

		router.GET(publicRouter, "/posts", s.postDomain.GetList)
		router.GET(publicRouter, "/posts/popular", s.postDomain.GetPopular)
		router.GET(publicRouter, "/posts/trending", s.postDomain.GetTrending)
		router.GET(publicRouter, "/posts/advanced_search", s.postDomain.AdvancedSearch)
		router.GET(publicRouter, "/posts/:id", s.postDomain.Get)
		router.GET(publicRouter, "/posts/:id/comments", s.commentDomain.GetList)

		router.GET(publicRouter, "/users/:id", s.userDomain.Get)
		router.GET(publicRouter, "/media", s.mediaDomain.GetList)
	}

	// These following APIs need authentication with only Access Token.
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	tokenAuthRouter := s.router.Branch()
	tokenAuthRouter.Before(authVerifier.Middleware())
	{
		router.PUT(tokenAuthRouter, "/users/me", s.userDomain.Update)

		router.POST(tokenAuthRouter, "/friendships", s.friendshipDomain.SendRequest)
		router.POST(tokenAuthRouter, "/friendships/:id/accept", s.friendshipDomain.Accept)
		router.POST(tokenAuthRouter, "/friendships/:id/decline", s.friendshipDomain.Decline)
		router.POST(tokenAuthRouter, "/friendships/:id/cancel", s.friendshipDomain.Cancel)
		router.DELETE(tokenAuthRouter, "/friendships", s.friendshipDomain.Unfriend)
		router.GET(tokenAuthRouter, "/friends", s.friendshipDomain.GetFriends)

		router.POST(tokenAuthRouter, "/communities", s.communityDomain.Create)
		router.POST(tokenAuthRouter, "/communities/:id/join", s.communityDomain.Join)
		router.POST(tokenAuthRouter, "/communities/:id/leave", s.communityDomain.Leave)

		router.POST(tokenAuthRouter, "/posts", s.postDomain.Create)
		router.POST(tokenAuthRouter, "/posts/:id/like", s.postDomain.Like)
		router.POST(tokenAuthRouter, "/posts/:id/increment_views", s.postDomain.IncrementViews)
		router.POST(tokenAuthRouter, "/posts/:id/publish", s.postDomain.Publish)
		router.POST(tokenAuthRouter, "/posts/:id/unpublish", s.postDomain.Unpublish)
		router.POST(tokenAuthRouter, "/posts/:id/comments", s.commentDomain.Add)
		router.POST(tokenAuthRouter, "/comments/:id/like", s.commentDomain.Like)

		router.POST(tokenAuthRouter, "/chats", s.chatDomain.Create)
		router.GET(tokenAuthRouter, "/chats", s.chatDomain.GetList)
		router.POST(tokenAuthRouter, "/chats/:id/messages", s.chatDomain.SendMessage)
		router.GET(tokenAuthRouter, "/chats/:id/messages", s.chatDomain.GetMessages)
		router.POST(tokenAuthRouter, "/chats/:id/read", s.chatDomain.MarkRead)

		router.POST(tokenAuthRouter, "/media", s.mediaDomain.Upload)
	}

	// The browser flow authenticates with the session cookie. Its leave is a
	// quiet one, leaving a community you are not in succeeds with a note.
	sessionAuthRouter := s.router.Branch()
	sessionVerifier := middleware.NewAuthVerifier().WithAccessToken().WithSession()
	sessionAuthRouter.Before(sessionVerifier.Middleware())
	{
		router.POST(sessionAuthRouter, "/web/communities/:id/join", s.communityDomain.Join)
		router.POST(sessionAuthRouter, "/web/communities/:id/leave", s.communityDomain.LeaveIfMember)
	}
}
