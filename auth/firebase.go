package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// GoogleProfile is the part of a verified Google ID token we keep.
type GoogleProfile struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// Verifier checks a federated sign-in token.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (GoogleProfile, error)
}

type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

// NewFirebaseVerifier initialises the Firebase Admin SDK from a credentials JSON blob.
func NewFirebaseVerifier(ctx context.Context, credsJSON, projectID string) (*FirebaseVerifier, error) {
	if credsJSON == "" || projectID == "" {
		return nil, ErrFirebaseNotConfigured
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (GoogleProfile, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		slog.Warn("firebase id token verification failed", "err", err)
		return GoogleProfile{}, ErrInvalidToken
	}

	if token.Audience != v.projectID {
		slog.Warn("firebase token audience mismatch", "audience", token.Audience)
		return GoogleProfile{}, ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return GoogleProfile{}, errors.New("email not found in token")
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	return GoogleProfile{UID: token.UID, Email: email, Name: name, Picture: picture}, nil
}

// DisabledVerifier rejects every token; used when Firebase credentials are absent.
type DisabledVerifier struct{}

func (DisabledVerifier) Verify(context.Context, string) (GoogleProfile, error) {
	return GoogleProfile{}, ErrFirebaseNotConfigured
}
