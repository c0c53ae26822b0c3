package domain

// Profile is a read-only snapshot of an Instagram account, fetched fresh
// per request and never cached between requests.
type Profile struct {
	ID               int64
	Username         string
	FullName         string
	Biography        string
	IsPrivate        bool
	IsVerified       bool
	IsBusiness       bool
	FollowedByViewer bool
	FollowerCount    int
	FollowingCount   int
	MediaCount       int
	AvatarURL        string
}

// Accessible reports whether the authenticated viewer may read the
// profile's media. A private profile is only accessible when followed.
func (p *Profile) Accessible() bool {
	return !p.IsPrivate || p.FollowedByViewer
}
