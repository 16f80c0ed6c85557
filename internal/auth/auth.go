// Package auth verifies bearer credentials against Firebase and makes the
// caller's user id available to handlers. Every read and write downstream is
// scoped to that id.
package auth

import (
	"context"
	"errors"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier checks an ID token and returns the subject's user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// NewApp builds the Firebase app handle shared by the token verifier and the
// storage bucket.
func NewApp(ctx context.Context, credentialsPath, storageBucket string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	return firebase.NewApp(ctx, &firebase.Config{StorageBucket: storageBucket}, opts...)
}

type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", ErrUnauthenticated
	}
	return decoded.UID, nil
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
