package auth

import "context"

type contextKey string

const accountIDContextKey contextKey = "accountID"

// ContextWithAccountID stamps a resolved account id onto a request context.
func ContextWithAccountID(ctx context.Context, accountID int) context.Context {
	return context.WithValue(ctx, accountIDContextKey, accountID)
}

// AccountIDFromContext reads the account id set by the auth middleware.
func AccountIDFromContext(ctx context.Context) (int, bool) {
	accountID, ok := ctx.Value(accountIDContextKey).(int)
	return accountID, ok && accountID > 0
}
