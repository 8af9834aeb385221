package domain

// Session is the per-request view of the signed session cookie.
type Session struct {
	UserID          int64
	IsAuthenticated bool
	IsAdmin         bool
}
