package auth

// Principal is the class of requester a route is restricted to
const (
	ISAUTHED = iota
	ISADMIN
)
