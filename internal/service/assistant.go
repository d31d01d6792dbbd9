package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jobbotwork/jobbot/internal/model"
	"github.com/jobbotwork/jobbot/internal/payment"
	"github.com/jobbotwork/jobbot/internal/pdf"
)

// Repository is the slice of the account store the assistant needs.
type Repository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByTelegramID(ctx context.Context, telegramID string) (*model.User, error)
	UpdateProfile(ctx context.Context, telegramID string, profileData string) error
	UpsertSubscription(ctx context.Context, userID, packageID int64) error
	CreateApplication(ctx context.Context, application *model.Application) error
	GetApplications(ctx context.Context, userID int64) ([]model.Application, error)
}

// ProfileExtractor turns CV text into a structured profile and writes
// cover letters.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, cvText string) (*model.Profile, error)
	GenerateCoverLetter(ctx context.Context, profile *model.Profile, jobTitle string) (string, error)
}

// CVStorage persists the original document and returns a stable reference.
type CVStorage interface {
	UploadCV(userID int64, content []byte, originalName string) (string, error)
}

// PaymentGateway opens checkout sessions for catalog packages.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, pkg model.Package) (*payment.CheckoutSession, error)
}

// ForwardingVerifier confirms the application domain forwards mail.
type ForwardingVerifier interface {
	Verify(ctx context.Context) error
}

// Deps carries the assistant's collaborators, injected at construction.
type Deps struct {
	Repo        Repository
	Extractor   ProfileExtractor
	Storage     CVStorage
	Gateway     PaymentGateway
	Verifier    ForwardingVerifier
	EmailDomain string
}

// JobAssistant orchestrates the intake, payment and application flows on
// top of the injected collaborators. Every call is a single attempt.
type JobAssistant struct {
	repo        Repository
	extractor   ProfileExtractor
	storage     CVStorage
	gateway     PaymentGateway
	verifier    ForwardingVerifier
	emailDomain string

	extractText func(data []byte) (string, error)
}

func NewJobAssistant(deps Deps) *JobAssistant {
	return &JobAssistant{
		repo:        deps.Repo,
		extractor:   deps.Extractor,
		storage:     deps.Storage,
		gateway:     deps.Gateway,
		verifier:    deps.Verifier,
		emailDomain: deps.EmailDomain,
		extractText: pdf.ExtractText,
	}
}

// ApplicationEmail derives the dedicated forwarding address for a user.
// Deterministic from the chat identifier, so no separate allocator is
// needed to guarantee uniqueness.
func (s *JobAssistant) ApplicationEmail(userID int64) string {
	return fmt.Sprintf("applicant_%d@%s", userID, s.emailDomain)
}

// IntakeResult is what a successful CV intake produced.
type IntakeResult struct {
	User         *model.User
	Profile      *model.Profile
	Email        string
	CVURL        string
	EmailWarning bool
}

// ProcessCV runs the full extraction pipeline for one uploaded document:
// sniff, extract text, extract profile, derive email, verify forwarding,
// store the document, create the account. Extraction and storage failures
// abort with nothing committed; the forwarding check only warns.
func (s *JobAssistant) ProcessCV(ctx context.Context, userID int64, content []byte, originalName string) (*IntakeResult, error) {
	if !pdf.IsPDF(content) {
		return nil, &ValidationError{Message: "Please send only PDF files."}
	}

	cvText, err := s.extractText(content)
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("failed to read pdf: %w", err)}
	}

	profile, err := s.extractor.ExtractProfile(ctx, cvText)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	result := &IntakeResult{
		Profile: profile,
		Email:   s.ApplicationEmail(userID),
	}

	if err := s.verifier.Verify(ctx); err != nil {
		// Non-fatal: logged and surfaced as a warning, the flow proceeds.
		log.Printf("user %d: %v", userID, &NotificationError{Err: err})
		result.EmailWarning = true
	}

	cvURL, err := s.storage.UploadCV(userID, content, originalName)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	result.CVURL = cvURL

	profileData, err := profile.Encode()
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	user := &model.User{
		TelegramID:  strconv.FormatInt(userID, 10),
		FullName:    profile.FullName,
		Email:       result.Email,
		ProfileData: profileData,
		CVURL:       cvURL,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, &StorageError{Err: err}
	}
	result.User = user

	return result, nil
}

// Catalog returns the fixed package catalog.
func (s *JobAssistant) Catalog() []model.Package {
	return model.Catalog()
}

// SelectPackage validates a catalog key and opens a checkout session for
// it. Unknown keys are rejected before the gateway is touched.
func (s *JobAssistant) SelectPackage(ctx context.Context, key string) (*payment.CheckoutSession, model.Package, error) {
	pkg, ok := model.PackageByKey(key)
	if !ok {
		return nil, model.Package{}, &ValidationError{Message: "Unknown package. Please pick one from the list."}
	}

	sess, err := s.gateway.CreateCheckout(ctx, pkg)
	if err != nil {
		return nil, pkg, &PaymentError{Err: err}
	}
	return sess, pkg, nil
}

// ActivateSubscription creates or resets the user's subscription for a
// package. Not wired to any inbound bot event: payment completion has no
// webhook, the operator drives this.
func (s *JobAssistant) ActivateSubscription(ctx context.Context, telegramID, packageKey string) error {
	pkg, ok := model.PackageByKey(packageKey)
	if !ok {
		return &ValidationError{Message: "Unknown package."}
	}

	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if user == nil {
		return &ValidationError{Message: "No account found. Please upload your CV first."}
	}

	if err := s.repo.UpsertSubscription(ctx, user.ID, pkg.ID); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

// UpdateProfile persists a user-edited profile.
func (s *JobAssistant) UpdateProfile(ctx context.Context, telegramID string, profile *model.Profile) error {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return &StorageError{Err: err}
	}
	if user == nil {
		return &ValidationError{Message: "No account found. Please upload your CV first."}
	}

	profileData, err := profile.Encode()
	if err != nil {
		return &ExtractionError{Err: err}
	}
	if err := s.repo.UpdateProfile(ctx, telegramID, profileData); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}

// Apply generates a cover letter for the preferred position and records
// the application with status submitted.
func (s *JobAssistant) Apply(ctx context.Context, telegramID string, preferences map[string]string) (*model.Application, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	if user == nil {
		return nil, &ValidationError{Message: "No account found. Please upload your CV first."}
	}

	profile, err := model.ParseProfile([]byte(user.ProfileData))
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("stored profile is unreadable: %w", err)}
	}

	jobTitle := preferences["job_title"]
	if jobTitle == "" {
		return nil, &ValidationError{Message: "Please tell me the job title you are looking for first."}
	}

	coverLetter, err := s.extractor.GenerateCoverLetter(ctx, profile, jobTitle)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	company := preferences["company"]
	if company == "" {
		company = "JobBot Network"
	}

	application := &model.Application{
		UserID:      user.ID,
		JobTitle:    jobTitle,
		Company:     company,
		Status:      model.ApplicationSubmitted,
		AppliedDate: time.Now(),
		CoverLetter: coverLetter,
	}
	if err := s.repo.CreateApplication(ctx, application); err != nil {
		return nil, &StorageError{Err: err}
	}
	return application, nil
}

// Applications lists the user's recorded applications, newest first.
func (s *JobAssistant) Applications(ctx context.Context, telegramID string) ([]model.Application, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	if user == nil {
		return nil, nil
	}
	return s.repo.GetApplications(ctx, user.ID)
}
