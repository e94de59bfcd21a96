package user

// User carries the minimum identity the scoring engine needs: a stable id
// and the display name leaderboards are tie-broken on.
type User struct {
	ID          string
	DisplayName string
}
