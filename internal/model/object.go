package model

type ShortUser struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsOnline  bool   `json:"is_online"`
}

type User struct {
	ShortUser
	Email      string `json:"email,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Phone      string `json:"phone,omitempty"`
	City       *City  `json:"city,omitempty"`
	Role       *Role  `json:"role,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
	Gender     string `json:"gender,omitempty"`
	LastSeen   string `json:"last_seen,omitempty"`
	IsVerified bool   `json:"is_verified"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type City struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Friendship struct {
	ID        string    `json:"id"`
	User      ShortUser `json:"user"`
	Friend    ShortUser `json:"friend"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"created_at"`
}

type Community struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	CoverURL     string `json:"cover_url,omitempty"`
	Type         string `json:"type"`
	Owner        ShortUser `json:"owner"`
	MembersCount int    `json:"members_count"`
	IsVerified   bool   `json:"is_verified"`
	CreatedAt    string `json:"created_at"`
}

type CommunityMember struct {
	User     ShortUser `json:"user"`
	Role     string    `json:"role"`
	JoinedAt string    `json:"joined_at"`
}

type Post struct {
	ID            string     `json:"id"`
	Author        ShortUser  `json:"author"`
	Community     *Community `json:"community,omitempty"`
	Content       string     `json:"content"`
	ViewsCount    int        `json:"views_count"`
	IsPublished   bool       `json:"is_published"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	CreatedAt     string     `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    ShortUser `json:"author"`
	ParentID  string    `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

type Chat struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Name         string      `json:"name,omitempty"`
	AvatarURL    string      `json:"avatar_url,omitempty"`
	Participants []ShortUser `json:"participants,omitempty"`
	CreatedAt    string      `json:"created_at"`
}

type Message struct {
	ID        int64     `json:"id"`
	ChatID    string    `json:"chat_id"`
	Sender    ShortUser `json:"sender"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	ReplyToID int64     `json:"reply_to_id,omitempty"`
}

type Media struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	Size         int64  `json:"size,omitempty"`
	OriginalName string `json:"original_name,omitempty"`
	PostID       string `json:"post_id,omitempty"`
	MessageID    int64  `json:"message_id,omitempty"`
}
