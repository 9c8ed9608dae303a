// Package net holds the transport neutral pieces of a request: its context values and the reply envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type credentialKey struct{}

// WithRequest stores reqID where chi's RequestID middleware would, so both paths read the same
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID is empty outside a request
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithCredential attaches a caller supplied GitHub token, it takes precedence over configured ones
func WithCredential(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialKey{}, token)
}

// Credential is the caller token on ctx, empty when none
func Credential(ctx context.Context) string {
	tok, _ := ctx.Value(credentialKey{}).(string)
	return tok
}
