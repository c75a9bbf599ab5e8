package domain

type Session struct {
	UserID    int64
	IssuedFor Credentials
}

func (s Session) Valid() bool {
	return s.UserID > 0
}
