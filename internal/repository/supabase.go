package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/jobbotwork/jobbot/internal/model"
)

type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) CreateUser(ctx context.Context, user *model.User) error {
	data, _, err := r.client.From("users").Insert(user, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Parse the response to backfill the generated ID
	var created []model.User
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created user: %w", err)
	}
	if len(created) > 0 {
		user.ID = created[0].ID
		user.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetUserByTelegramID(ctx context.Context, telegramID string) (*model.User, error) {
	var users []model.User
	data, count, err := r.client.From("users").
		Select("*", "", false).
		Eq("telegram_id", telegramID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	_ = count

	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (r *SupabaseRepository) UpdateProfile(ctx context.Context, telegramID string, profileData string) error {
	_, count, err := r.client.From("users").
		Update(map[string]string{"profile_data": profileData}, "", "").
		Eq("telegram_id", telegramID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	_ = count
	return nil
}

// SeedPackages writes the fixed catalog into the packages table once.
// Existing rows are left alone.
func (r *SupabaseRepository) SeedPackages(ctx context.Context, packages []model.Package) error {
	var existing []model.Package
	data, _, err := r.client.From("packages").
		Select("*", "", false).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to read packages: %w", err)
	}
	if err := json.Unmarshal(data, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range packages {
		if _, _, err := r.client.From("packages").Insert(p, true, "", "", "").Execute(); err != nil {
			return fmt.Errorf("failed to seed package %s: %w", p.Name, err)
		}
	}
	return nil
}

func (r *SupabaseRepository) UpsertSubscription(ctx context.Context, userID, packageID int64) error {
	var existing []model.Subscription
	data, _, err := r.client.From("subscriptions").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if err := json.Unmarshal(data, &existing); err != nil {
		return err
	}

	if len(existing) > 0 {
		sub := existing[0]
		sub.PackageID = packageID
		sub.ApplicationsUsed = 0
		sub.IsActive = true
		_, _, err := r.client.From("subscriptions").
			Update(sub, "", "").
			Eq("id", strconv.FormatInt(sub.ID, 10)).
			Execute()
		if err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}
		return nil
	}

	sub := model.Subscription{
		UserID:    userID,
		PackageID: packageID,
		StartDate: time.Now(),
		IsActive:  true,
	}
	if _, _, err := r.client.From("subscriptions").Insert(sub, true, "", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateApplication(ctx context.Context, application *model.Application) error {
	data, _, err := r.client.From("applications").Insert(application, true, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	var created []model.Application
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created application: %w", err)
	}
	if len(created) > 0 {
		application.ID = created[0].ID
	}
	return nil
}

func (r *SupabaseRepository) GetApplications(ctx context.Context, userID int64) ([]model.Application, error) {
	var applications []model.Application
	data, count, err := r.client.From("applications").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Order("applied_date.desc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}
	_ = count

	if err := json.Unmarshal(data, &applications); err != nil {
		return nil, fmt.Errorf("failed to parse applications: %w", err)
	}
	return applications, nil
}
