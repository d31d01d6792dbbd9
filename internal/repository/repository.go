package repository

import (
	"context"

	"github.com/jobbotwork/jobbot/internal/model"
)

type Repository interface {
	// Accounts
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByTelegramID(ctx context.Context, telegramID string) (*model.User, error)
	UpdateProfile(ctx context.Context, telegramID string, profileData string) error

	// Catalog
	SeedPackages(ctx context.Context, packages []model.Package) error

	// Subscriptions
	UpsertSubscription(ctx context.Context, userID, packageID int64) error

	// Applications
	CreateApplication(ctx context.Context, application *model.Application) error
	GetApplications(ctx context.Context, userID int64) ([]model.Application, error)
}
