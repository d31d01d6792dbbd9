package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobbotwork/jobbot/internal/model"
	"github.com/jobbotwork/jobbot/internal/payment"
)

// pdfBytes sniffs as application/pdf; the content after the magic header
// is irrelevant to the sniff.
var pdfBytes = []byte("%PDF-1.4\nfake body")

type fakeRepo struct {
	users        map[string]*model.User
	applications []model.Application
	subscription *model.Subscription
	createErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*model.User)}
}

func (r *fakeRepo) CreateUser(ctx context.Context, user *model.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	user.ID = int64(len(r.users) + 1)
	r.users[user.TelegramID] = user
	return nil
}

func (r *fakeRepo) GetUserByTelegramID(ctx context.Context, telegramID string) (*model.User, error) {
	return r.users[telegramID], nil
}

func (r *fakeRepo) UpdateProfile(ctx context.Context, telegramID string, profileData string) error {
	user, ok := r.users[telegramID]
	if !ok {
		return errors.New("no such user")
	}
	user.ProfileData = profileData
	return nil
}

func (r *fakeRepo) UpsertSubscription(ctx context.Context, userID, packageID int64) error {
	r.subscription = &model.Subscription{UserID: userID, PackageID: packageID, IsActive: true}
	return nil
}

func (r *fakeRepo) CreateApplication(ctx context.Context, application *model.Application) error {
	application.ID = int64(len(r.applications) + 1)
	r.applications = append(r.applications, *application)
	return nil
}

func (r *fakeRepo) GetApplications(ctx context.Context, userID int64) ([]model.Application, error) {
	return r.applications, nil
}

type fakeExtractor struct {
	profile     *model.Profile
	extractErr  error
	coverLetter string
	letterErr   error
}

func (e *fakeExtractor) ExtractProfile(ctx context.Context, cvText string) (*model.Profile, error) {
	if e.extractErr != nil {
		return nil, e.extractErr
	}
	return e.profile, nil
}

func (e *fakeExtractor) GenerateCoverLetter(ctx context.Context, profile *model.Profile, jobTitle string) (string, error) {
	if e.letterErr != nil {
		return "", e.letterErr
	}
	return e.coverLetter, nil
}

type fakeStorage struct {
	url string
	err error
}

func (s *fakeStorage) UploadCV(userID int64, content []byte, originalName string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type fakeGateway struct {
	calls   int
	lastPkg model.Package
	session *payment.CheckoutSession
	err     error
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, pkg model.Package) (*payment.CheckoutSession, error) {
	g.calls++
	g.lastPkg = pkg
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

type fakeVerifier struct {
	err error
}

func (v *fakeVerifier) Verify(ctx context.Context) error {
	return v.err
}

type fixture struct {
	repo      *fakeRepo
	extractor *fakeExtractor
	storage   *fakeStorage
	gateway   *fakeGateway
	verifier  *fakeVerifier
	assistant *JobAssistant
}

func newFixture() *fixture {
	f := &fixture{
		repo: newFakeRepo(),
		extractor: &fakeExtractor{
			profile:     &model.Profile{FullName: "Jane Doe", Skills: []string{"Go"}},
			coverLetter: "Dear hiring manager,",
		},
		storage:  &fakeStorage{url: "https://storage.example/cvs/123/20250101_000000_abcd1234.pdf"},
		gateway:  &fakeGateway{session: &payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}},
		verifier: &fakeVerifier{},
	}
	f.assistant = NewJobAssistant(Deps{
		Repo:        f.repo,
		Extractor:   f.extractor,
		Storage:     f.storage,
		Gateway:     f.gateway,
		Verifier:    f.verifier,
		EmailDomain: "jobbot.work",
	})
	f.assistant.extractText = func(data []byte) (string, error) {
		return "cv text", nil
	}
	return f
}

func TestApplicationEmail(t *testing.T) {
	f := newFixture()
	assert.Equal(t, "applicant_123@jobbot.work", f.assistant.ApplicationEmail(123))
}

func TestProcessCVSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.assistant.ProcessCV(context.Background(), 123, pdfBytes, "cv.pdf")
	require.NoError(t, err)

	assert.Equal(t, "applicant_123@jobbot.work", result.Email)
	assert.False(t, result.EmailWarning)
	assert.Equal(t, f.storage.url, result.CVURL)

	user := f.repo.users["123"]
	require.NotNil(t, user)
	assert.Equal(t, "Jane Doe", user.FullName)
	assert.Equal(t, "applicant_123@jobbot.work", user.Email)
	assert.Equal(t, f.storage.url, user.CVURL)

	// profile_data round-trips through the typed record
	stored, err := model.ParseProfile([]byte(user.ProfileData))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.FullName)
}

func TestProcessCVRejectsSniffedNonPDF(t *testing.T) {
	f := newFixture()

	// Named cv.pdf but sniffs as text/plain: rejected regardless of extension.
	_, err := f.assistant.ProcessCV(context.Background(), 123, []byte("just some plain text"), "cv.pdf")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Please send only PDF files.", validationErr.Message)
	assert.Empty(t, f.repo.users, "no account may be created")
}

func TestProcessCVExtractionFailureCreatesNothing(t *testing.T) {
	f := newFixture()
	f.extractor.extractErr = errors.New("model unavailable")

	_, err := f.assistant.ProcessCV(context.Background(), 123, pdfBytes, "cv.pdf")

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Empty(t, f.repo.users)
}

func TestProcessCVStorageFailureCreatesNothing(t *testing.T) {
	f := newFixture()
	f.storage.err = errors.New("bucket unavailable")

	_, err := f.assistant.ProcessCV(context.Background(), 123, pdfBytes, "cv.pdf")

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Empty(t, f.repo.users)
}

func TestProcessCVForwardingFailureOnlyWarns(t *testing.T) {
	f := newFixture()
	f.verifier.err = errors.New("no MX records")

	result, err := f.assistant.ProcessCV(context.Background(), 123, pdfBytes, "cv.pdf")
	require.NoError(t, err)
	assert.True(t, result.EmailWarning)
	assert.NotEmpty(t, f.repo.users, "account is still created")
}

func TestSelectPackageInvokesGatewayInCents(t *testing.T) {
	f := newFixture()

	checkout, pkg, err := f.assistant.SelectPackage(context.Background(), "pro")
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", checkout.ID)
	assert.Equal(t, "Pro", pkg.Name)
	assert.Equal(t, 1, f.gateway.calls)
	assert.Equal(t, int64(14999), f.gateway.lastPkg.AmountCents())
}

func TestSelectPackageUnknownKeySkipsGateway(t *testing.T) {
	f := newFixture()

	_, _, err := f.assistant.SelectPackage(context.Background(), "platinum")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, f.gateway.calls, "gateway must not be touched for unknown keys")
}

func TestSelectPackageGatewayFailureSurfaces(t *testing.T) {
	f := newFixture()
	f.gateway.err = errors.New("stripe is down")

	_, _, err := f.assistant.SelectPackage(context.Background(), "basic")

	var paymentErr *PaymentError
	require.ErrorAs(t, err, &paymentErr)
}

func TestActivateSubscription(t *testing.T) {
	f := newFixture()
	_, err := f.assistant.ProcessCV(context.Background(), 123, pdfBytes, "cv.pdf")
	require.NoError(t, err)

	require.NoError(t, f.assistant.ActivateSubscription(context.Background(), "123", "pro"))
	require.NotNil(t, f.repo.subscription)
	assert.Equal(t, int64(2), f.repo.subscription.PackageID)
	assert.True(t, f.repo.subscription.IsActive)
}

func TestApplyRecordsApplication(t *testing.T) {
	f := newFixture()
	_, err := f.assistant.ProcessCV(context.Background(), 123, pdfBytes, "cv.pdf")
	require.NoError(t, err)

	application, err := f.assistant.Apply(context.Background(), "123", map[string]string{
		"job_title": "Backend Developer",
	})
	require.NoError(t, err)

	assert.Equal(t, "Backend Developer", application.JobTitle)
	assert.Equal(t, model.ApplicationSubmitted, application.Status)
	assert.Equal(t, "Dear hiring manager,", application.CoverLetter)
	require.Len(t, f.repo.applications, 1)
}

func TestApplyWithoutAccount(t *testing.T) {
	f := newFixture()

	_, err := f.assistant.Apply(context.Background(), "999", map[string]string{"job_title": "Go Developer"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestApplyWithoutJobTitle(t *testing.T) {
	f := newFixture()
	_, err := f.assistant.ProcessCV(context.Background(), 123, pdfBytes, "cv.pdf")
	require.NoError(t, err)

	_, err = f.assistant.Apply(context.Background(), "123", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, f.repo.applications)
}

func TestUpdateProfileWithoutAccount(t *testing.T) {
	f := newFixture()

	err := f.assistant.UpdateProfile(context.Background(), "999", &model.Profile{FullName: "Jane"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestErrorTaxonomyUnwraps(t *testing.T) {
	cause := errors.New("boom")
	for _, err := range []error{
		&ExtractionError{Err: cause},
		&StorageError{Err: cause},
		&NotificationError{Err: cause},
		&PaymentError{Err: cause},
	} {
		assert.ErrorIs(t, err, cause, fmt.Sprintf("%T", err))
	}
}
