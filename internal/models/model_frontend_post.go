package models

// FeedComment is a comment as rendered to a viewer.
type FeedComment struct {
	Comment
	Author *UserSummary `json:"author,omitempty"`
}

// FeedPost is a post as rendered to a viewer: author resolved, comments
// already passed through the viewer's block filter.
type FeedPost struct {
	Post
	Author       *UserSummary  `json:"author"`
	Comments     []FeedComment `json:"comments"`
	CommentCount int           `json:"commentCount"`
	Liked        bool          `json:"liked"`
	Saved        bool          `json:"saved"`
}
