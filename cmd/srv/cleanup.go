package main

import (
	"time"

	"github.com/socialnet-labs/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCleanupUsers(cctx *cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadSearcher()
	s.loadRepos()

	defer s.searcher.Close()

	before := time.Now().AddDate(0, 0, -cctx.Int("days"))
	users, err := s.userRepo.GetInactiveSince(s.ctx, before)
	if err != nil {
		return err
	}

	logger := xcontext.Logger(s.ctx)
	if len(users) == 0 {
		logger.Infof("No inactive users found")
		return nil
	}

	ids := []string{}
	for _, user := range users {
		logger.Infof("Inactive user %s (%s)", user.ID, user.Email)
		ids = append(ids, user.ID)
	}

	if cctx.Bool("dry-run") {
		logger.Infof("Dry run, %d users would be deactivated", len(ids))
		return nil
	}

	if err := s.userRepo.DeactivateByIDs(s.ctx, ids); err != nil {
		return err
	}

	logger.Infof("Deactivated %d users", len(ids))
	return nil
}
