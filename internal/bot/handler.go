package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jobbotwork/jobbot/internal/model"
	"github.com/jobbotwork/jobbot/internal/service"
	"github.com/jobbotwork/jobbot/internal/session"
)

const welcomeMessage = "🤖 Welcome to JobBot!\n\n" +
	"I'm your automated job application assistant. " +
	"Upload your CV, and I'll handle the rest!\n\n" +
	"Please choose an option to get started:"

const packageInfo = "📦 Available Packages:\n\n" +
	"🔹 Basic: 100 applications/month - $49.99\n" +
	"🔸 Pro: 500 applications/month - $149.99\n" +
	"💎 Enterprise: Unlimited applications - $299.99\n\n" +
	"Each package includes:\n" +
	"✓ AI-powered cover letter generation\n" +
	"✓ Automatic profile matching\n" +
	"✓ Application tracking\n" +
	"✓ Dedicated application email\n" +
	"✓ 24/7 support"

const profileSetupPrompt = "Let's set up your profile! Please send the following, one line each:\n" +
	"1. Your full name\n" +
	"2. Key skills (comma separated)\n" +
	"3. Work experience\n" +
	"4. Education"

const extractionApology = "Sorry, I couldn't process your CV. Please make sure it's a valid PDF file " +
	"and try again."

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil && update.CallbackQuery == nil {
		return
	}

	var userID, chatID int64
	if update.Message != nil {
		userID = update.Message.From.ID
		chatID = update.Message.Chat.ID
	} else {
		userID = update.CallbackQuery.From.ID
		chatID = update.CallbackQuery.Message.Chat.ID
	}

	// Events within one conversation are processed strictly in arrival
	// order; conversations of different users proceed independently.
	sess := b.sessions.Get(userID, chatID)
	sess.Lock()
	defer sess.Unlock()

	if update.Message != nil && update.Message.IsCommand() {
		b.handleCommand(sess, update.Message)
		return
	}

	if update.CallbackQuery != nil {
		b.handleCallback(sess, update.CallbackQuery)
		return
	}

	if update.Message.Document != nil {
		b.handleDocument(sess, update.Message)
		return
	}

	b.handleMessage(sess, update.Message)
}

func (b *Bot) handleCommand(sess *session.Session, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(sess)
	}
}

func (b *Bot) handleStart(sess *session.Session) {
	if err := sess.Apply(session.EventStart); err != nil {
		log.Printf("start transition failed: %v", err)
		return
	}
	b.sendWithMarkup(sess.ChatID, welcomeMessage, b.getMainKeyboard())
}

func (b *Bot) handleCallback(sess *session.Session, callback *tgbotapi.CallbackQuery) {
	switch {
	case callback.Data == "start":
		b.handleStart(sess)
	case callback.Data == "upload_cv":
		if err := sess.Apply(session.EventStart); err != nil {
			log.Printf("upload_cv transition failed: %v", err)
		}
		b.sendMessage(sess.ChatID, "Please send me your CV as a PDF file.")
	case callback.Data == "view_packages":
		if err := sess.Apply(session.EventViewPackages); err != nil {
			log.Printf("view_packages transition failed: %v", err)
		}
		b.sendPackages(sess)
	case callback.Data == "setup_profile":
		if err := sess.Apply(session.EventSetupProfile); err != nil {
			log.Printf("setup_profile transition failed: %v", err)
		}
		b.sendMessage(sess.ChatID, profileSetupPrompt)
	case callback.Data == "my_applications":
		b.handleMyApplications(sess)
	case callback.Data == "apply_jobs":
		b.handleApply(sess)
	case strings.HasPrefix(callback.Data, "select_package_"):
		b.handleSelectPackage(sess, strings.TrimPrefix(callback.Data, "select_package_"))
	}

	// Answer the callback to clear the loading indicator
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}

func (b *Bot) handleDocument(sess *session.Session, message *tgbotapi.Message) {
	// A document sent before /start still begins the intake funnel.
	if sess.Stage == session.StageEntry {
		_ = sess.Apply(session.EventStart)
	}
	if _, err := session.Next(sess.Stage, session.EventCVAccepted); err != nil {
		b.sendWithMarkup(sess.ChatID, "You've already uploaded a CV. Please choose an option:", b.getMainKeyboard())
		return
	}

	content, err := b.downloadFile(message.Document.FileID)
	if err != nil {
		log.Printf("failed to download document for user %d: %v", sess.UserID, err)
		b.sendMessage(sess.ChatID, extractionApology)
		return
	}

	result, err := b.service.ProcessCV(context.Background(), sess.UserID, content, message.Document.FileName)
	if err != nil {
		b.sendIntakeError(sess.ChatID, err)
		return
	}

	sess.Profile = result.Profile
	sess.CVURL = result.CVURL
	if err := sess.Apply(session.EventCVAccepted); err != nil {
		log.Printf("cv_accepted transition failed: %v", err)
	}

	if result.EmailWarning {
		b.sendMessage(sess.ChatID,
			"⚠️ Warning: There was an issue setting up your email forwarding. "+
				"Please contact support.")
	}

	b.sendMessage(sess.ChatID, fmt.Sprintf(
		"✅ CV processed successfully!\n\n"+
			"📧 Your application email: %s\n"+
			"All job-related emails will be forwarded to our system.\n\n"+
			"I've extracted your information and created your profile. "+
			"Now, let's choose a package to start applying for jobs!",
		result.Email))

	b.sendPackages(sess)
}

func (b *Bot) sendIntakeError(chatID int64, err error) {
	var validationErr *service.ValidationError
	var storageErr *service.StorageError

	switch {
	case errors.As(err, &validationErr):
		b.sendMessage(chatID, validationErr.Message)
	case errors.As(err, &storageErr):
		log.Printf("cv storage failed: %v", err)
		b.sendMessage(chatID,
			"⚠️ Warning: There was an issue storing your CV. "+
				"Please try again or contact support.")
	default:
		log.Printf("cv processing failed: %v", err)
		b.sendMessage(chatID, extractionApology)
	}
}

func (b *Bot) sendPackages(sess *session.Session) {
	b.sendWithMarkup(sess.ChatID, packageInfo, b.getPackagesKeyboard(b.service.Catalog()))
}

func (b *Bot) handleSelectPackage(sess *session.Session, key string) {
	if _, err := session.Next(sess.Stage, session.EventPackageChosen); err != nil {
		// Stale button press; bring the user back to the catalog first.
		_ = sess.Apply(session.EventViewPackages)
		b.sendPackages(sess)
		return
	}

	checkout, pkg, err := b.service.SelectPackage(context.Background(), key)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			b.sendMessage(sess.ChatID, validationErr.Message)
			return
		}
		// Gateway failures are surfaced explicitly, never swallowed.
		log.Printf("payment gateway error for user %d, package %s: %v", sess.UserID, key, err)
		b.sendMessage(sess.ChatID, "❌ Payment service is unavailable right now. Please try again later.")
		return
	}

	sess.PackageKey = key
	sess.PaymentSessionID = checkout.ID
	if err := sess.Apply(session.EventPackageChosen); err != nil {
		log.Printf("package_chosen transition failed: %v", err)
	}

	b.sendWithMarkup(sess.ChatID, fmt.Sprintf(
		"Great choice! You selected the %s package.\n"+
			"Total price: $%.2f\n\n"+
			"Click the button below to proceed with payment.\n\n"+
			"Once you've paid, send me the job title you're looking for and I'll start applying.",
		pkg.Name, pkg.Price),
		b.getPayKeyboard(checkout.URL))
}

func (b *Bot) handleMyApplications(sess *session.Session) {
	applications, err := b.service.Applications(context.Background(), b.telegramID(sess))
	if err != nil {
		log.Printf("failed to list applications for user %d: %v", sess.UserID, err)
		b.sendMessage(sess.ChatID, "❌ Couldn't load your applications. Please try again.")
		return
	}

	if len(applications) == 0 {
		b.sendWithMarkup(sess.ChatID,
			"You have no applications yet. Upload your CV and pick a package to get started!",
			b.getMainKeyboard())
		return
	}

	text := "📋 Your applications:\n\n"
	for _, a := range applications {
		text += fmt.Sprintf("%s %s at %s — %s\n",
			statusEmoji(a.Status), a.JobTitle, a.Company, a.Status)
	}
	b.sendMessage(sess.ChatID, text)

	png, err := b.charts.GenerateApplicationsChart(applications)
	if err != nil {
		log.Printf("failed to render applications chart: %v", err)
		return
	}
	if png == nil {
		return
	}
	photo := tgbotapi.NewPhoto(sess.ChatID, tgbotapi.FileBytes{
		Name:  "applications.png",
		Bytes: png,
	})
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("failed to send applications chart: %v", err)
	}
}

func (b *Bot) handleApply(sess *session.Session) {
	if _, err := session.Next(sess.Stage, session.EventApply); err != nil {
		b.sendMessage(sess.ChatID, "Please tell me the job title you are looking for first.")
		return
	}

	b.sendMessage(sess.ChatID, "🤖 Applying to jobs...")

	application, err := b.service.Apply(context.Background(), b.telegramID(sess), sess.Preferences)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			b.sendMessage(sess.ChatID, validationErr.Message)
			return
		}
		log.Printf("apply failed for user %d: %v", sess.UserID, err)
		b.sendMessage(sess.ChatID, "❌ Something went wrong while applying. Please try again later.")
		return
	}

	_ = sess.Apply(session.EventApply)

	b.sendMessage(sess.ChatID, fmt.Sprintf(
		"✓ Generated personalized cover letter\n"+
			"✓ Matched profile with job requirements\n"+
			"✓ Submitted application for %s at %s\n\n"+
			"Application successful! I'll notify you of any responses.",
		application.JobTitle, application.Company))

	_ = sess.Apply(session.EventApplyFinished)
	b.sendWithMarkup(sess.ChatID, "Please choose an option:", b.getMainKeyboard())
}

func (b *Bot) handleMessage(sess *session.Session, message *tgbotapi.Message) {
	switch sess.Stage {
	case session.StageAwaitingCV:
		b.sendMessage(sess.ChatID, "Please send me your CV as a PDF file.")
	case session.StageProfileSetup:
		b.handleProfileForm(sess, message.Text)
	case session.StagePaymentPending, session.StagePreferences:
		title := strings.TrimSpace(message.Text)
		if title == "" {
			return
		}
		sess.SetPreference("job_title", title)
		if err := sess.Apply(session.EventPreferencesSet); err != nil {
			log.Printf("preferences transition failed: %v", err)
			return
		}
		b.sendWithMarkup(sess.ChatID,
			fmt.Sprintf("Preferences saved! Looking for: %s", title),
			b.getApplyKeyboard())
	default:
		b.sendWithMarkup(sess.ChatID, "Please choose an option:", b.getMainKeyboard())
	}
}

func (b *Bot) handleProfileForm(sess *session.Session, text string) {
	profile := parseProfileForm(text)
	if profile.FullName == "" {
		b.sendMessage(sess.ChatID, "The first line should be your full name. Please try again.")
		return
	}

	err := b.service.UpdateProfile(context.Background(), b.telegramID(sess), profile)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			b.sendMessage(sess.ChatID, validationErr.Message)
			return
		}
		log.Printf("profile update failed for user %d: %v", sess.UserID, err)
		b.sendMessage(sess.ChatID, "❌ Couldn't save your profile. Please try again.")
		return
	}

	sess.Profile = profile
	_ = sess.Apply(session.EventStart)
	b.sendWithMarkup(sess.ChatID, "✅ Profile updated!", b.getMainKeyboard())
}

// parseProfileForm maps the free-text profile form onto the structured
// record: full name, comma-separated skills, work experience, education,
// one line each. Missing lines leave the field empty.
func parseProfileForm(text string) *model.Profile {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	profile := &model.Profile{}
	if len(lines) > 0 {
		profile.FullName = lines[0]
	}
	if len(lines) > 1 && lines[1] != "" {
		for _, skill := range strings.Split(lines[1], ",") {
			if s := strings.TrimSpace(skill); s != "" {
				profile.Skills = append(profile.Skills, s)
			}
		}
	}
	if len(lines) > 2 && lines[2] != "" {
		profile.WorkExperience = []string{lines[2]}
	}
	if len(lines) > 3 && lines[3] != "" {
		profile.Education = []string{lines[3]}
	}
	return profile
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file url: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) telegramID(sess *session.Session) string {
	return strconv.FormatInt(sess.UserID, 10)
}

func statusEmoji(status model.ApplicationStatus) string {
	switch status {
	case model.ApplicationAccepted:
		return "🎉"
	case model.ApplicationRejected:
		return "❌"
	case model.ApplicationSubmitted:
		return "📨"
	default:
		return "⏳"
	}
}
