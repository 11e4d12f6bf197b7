package common

import (
	"strings"

	"github.com/socialnet-labs/backend/pkg/errorx"
)

const (
	MinPostContentLen    = 10
	MinCommentContentLen = 2
	MinCommunityNameLen  = 3
	MaxCommunityNameLen  = 100
)

var postForbiddenWords = []string{"spam", "advertisement", "scam"}

var communityForbiddenWords = []string{"admin", "administration", "moderator", "official"}

func ValidatePostContent(content string) error {
	if len(strings.TrimSpace(content)) < MinPostContentLen {
		return errorx.New(errorx.BadRequest,
			"Post content must be at least %d characters", MinPostContentLen)
	}

	lower := strings.ToLower(content)
	for _, word := range postForbiddenWords {
		if strings.Contains(lower, word) {
			return errorx.New(errorx.BadRequest,
				"Post content contains a forbidden word: %s", word)
		}
	}

	return nil
}

func ValidateCommentContent(content string) error {
	if len(strings.TrimSpace(content)) < MinCommentContentLen {
		return errorx.New(errorx.BadRequest,
			"Comment must be at least %d characters", MinCommentContentLen)
	}

	return nil
}

func ValidateCommunityName(name string) error {
	if len(strings.TrimSpace(name)) < MinCommunityNameLen {
		return errorx.New(errorx.BadRequest,
			"Community name must be at least %d characters", MinCommunityNameLen)
	}

	if len(name) > MaxCommunityNameLen {
		return errorx.New(errorx.BadRequest,
			"Community name must not exceed %d characters", MaxCommunityNameLen)
	}

	lower := strings.ToLower(name)
	for _, word := range communityForbiddenWords {
		if strings.Contains(lower, word) {
			return errorx.New(errorx.BadRequest,
				"Community name contains a forbidden word: %s", word)
		}
	}

	return nil
}
