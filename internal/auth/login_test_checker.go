package auth

import "context"

type LoginTestChecker struct {
	LoggedSessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		map[string]int{},
	}
}

func (c *LoginTestChecker) AccountID(_ context.Context, token string) (int, error) {
	accountID, ok := c.LoggedSessions[token]
	if !ok {
		return 0, ErrNoSession
	}
	return accountID, nil
}
