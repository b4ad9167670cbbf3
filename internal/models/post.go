package models

import "time"

// Reply is a snapshot taken at reply time: Username and ProfilePic are the
// author's values as of that moment and are not updated on later profile edits.
type Reply struct {
	UserID     string `json:"userId"`
	Text       string `json:"text"`
	Username   string `json:"username"`
	ProfilePic string `json:"userProfilePic,omitempty"`
}

// Post is a single post. Likes holds user ids; Replies is append-only,
// oldest first.
type Post struct {
	ID        string    `json:"id"`
	PostedBy  string    `json:"postedBy"`
	Text      string    `json:"text"`
	Img       string    `json:"img,omitempty"`
	Likes     []string  `json:"likes"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
}
