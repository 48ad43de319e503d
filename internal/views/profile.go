package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/getmentor/mentorship-portal/internal/models"
	apperrors "github.com/getmentor/mentorship-portal/pkg/errors"
	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/getmentor/mentorship-portal/pkg/metrics"
	"go.uber.org/zap"
)

// ProfileTab is one of the three mutually exclusive settings forms
type ProfileTab string

const (
	TabBasicDetails     ProfileTab = "basicDetails"
	TabSocialMedia      ProfileTab = "socialMedia"
	TabLoginAndSecurity ProfileTab = "loginAndSecurity"
)

var ProfileTabs = []ProfileTab{TabBasicDetails, TabSocialMedia, TabLoginAndSecurity}

func (t ProfileTab) Valid() bool {
	return t == TabBasicDetails || t == TabSocialMedia || t == TabLoginAndSecurity
}

const (
	settingsView            = "settings"
	passwordMismatchMessage = "New password and confirmation do not match"
	profileNotLoadedMessage = "Your profile could not be loaded, so nothing was saved"
)

var (
	// ErrPasswordMismatch is returned when the confirmation differs from the new password
	ErrPasswordMismatch = apperrors.InvalidInputError("confirmPassword", "does not match the new password")

	// ErrProfileNotLoaded is returned when a profile save comes before the record was fetched
	ErrProfileNotLoaded = fmt.Errorf("profile has not been loaded: %w", apperrors.ErrConflict)
)

type ProfileSnapshot struct {
	Tab     ProfileTab     `json:"tab"`
	Tabs    []ProfileTab   `json:"tabs"`
	Loading bool           `json:"loading"`
	Saving  bool           `json:"saving"`
	Error   string         `json:"error,omitempty"`
	Profile models.Profile `json:"profile"`
}

// ProfileSettingsView edits the viewer's profile across three tabs. The
// password sub-form lives beside the profile and is submitted separately.
type ProfileSettingsView struct {
	api ProfileAPI
	nav *Navigator

	mu       sync.Mutex
	mounted  bool
	loaded   bool
	tab      ProfileTab
	profile  models.Profile
	password models.PasswordForm
	loading  bool
	saving   bool
	errMsg   string
	notice   *Notice
	tracker  requestTracker
}

func NewProfileSettingsView(api ProfileAPI, nav *Navigator) *ProfileSettingsView {
	return &ProfileSettingsView{
		api:     api,
		nav:     nav,
		tab:     TabBasicDetails,
		profile: models.Profile{}.Normalize(),
	}
}

// Enter shows the settings page on tab ("" keeps the current tab) and fetches
// the profile when the page is mounted
func (v *ProfileSettingsView) Enter(ctx context.Context, tab ProfileTab) error {
	if tab != "" {
		if err := v.SelectTab(tab); err != nil {
			return err
		}
	}
	arrived := v.nav.Navigate(PageSettings)

	v.mu.Lock()
	if v.mounted && !arrived {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()

	v.load(ctx)
	return nil
}

// EnsureLoaded fetches the profile unless a fetch has already succeeded. Edits
// must only be applied on top of the server's record.
func (v *ProfileSettingsView) EnsureLoaded(ctx context.Context) error {
	v.mu.Lock()
	loaded := v.loaded
	v.mu.Unlock()
	if loaded {
		return nil
	}

	if err := v.load(ctx); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.loaded {
		return ErrProfileNotLoaded
	}
	return nil
}

func (v *ProfileSettingsView) load(ctx context.Context) error {
	v.mu.Lock()
	v.mounted = true
	v.loading = true
	v.errMsg = ""
	fetchCtx, gen := v.tracker.next(ctx)
	v.mu.Unlock()

	profile, err := v.api.GetProfile(fetchCtx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.tracker.settle(gen) {
		recordSuperseded(settingsView)
		return nil
	}
	recordFetch(settingsView, err)

	v.loading = false
	if err != nil {
		v.failLocked(err, "Failed to load profile")
		return err
	}
	v.profile = profile.Normalize()
	v.loaded = true
	return nil
}

// SelectTab switches the visible form without any network call
func (v *ProfileSettingsView) SelectTab(tab ProfileTab) error {
	if !tab.Valid() {
		return apperrors.InvalidInputError("tab", fmt.Sprintf("unknown settings tab %q", tab))
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab = tab
	return nil
}

func (v *ProfileSettingsView) ApplyBasicDetails(d models.BasicDetails) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.profile.Name = d.Name
	v.profile.Email = d.Email
	v.profile.Phone = d.Phone
	v.profile.Department = d.Department
	v.profile.YearOfStudy = d.YearOfStudy
	v.profile.Expertise = append([]string{}, d.Expertise...)
	v.profile.Interests = append([]string{}, d.Interests...)
	v.profile.Bio = d.Bio
}

func (v *ProfileSettingsView) ApplySocialLinks(links models.SocialLinks) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profile.SocialLinks = links
}

func (v *ProfileSettingsView) SetPasswordFields(form models.PasswordForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.password = form
}

// Submit saves the active tab. The credential tab changes the password; the
// other tabs send the whole profile and adopt the server's answer. A failure
// keeps every local edit.
func (v *ProfileSettingsView) Submit(ctx context.Context) error {
	v.mu.Lock()
	tab := v.tab
	v.mu.Unlock()

	if tab == TabLoginAndSecurity {
		return v.submitPassword(ctx)
	}
	return v.submitProfile(ctx, tab)
}

func (v *ProfileSettingsView) submitPassword(ctx context.Context) error {
	v.mu.Lock()
	form := v.password
	if form.NewPassword != form.ConfirmPassword {
		v.notice = &Notice{Level: NoticeError, Text: passwordMismatchMessage}
		v.mu.Unlock()
		metrics.ProfileUpdates.WithLabelValues("password", "rejected").Inc()
		return ErrPasswordMismatch
	}
	v.saving = true
	v.errMsg = ""
	v.mu.Unlock()

	err := v.api.UpdatePassword(ctx, models.PasswordChange{
		CurrentPassword: form.CurrentPassword,
		NewPassword:     form.NewPassword,
	})
	metrics.ProfileUpdates.WithLabelValues("password", metrics.StatusLabel(err)).Inc()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.saving = false

	if err != nil {
		logger.Warn("Password update failed", zap.Error(err))
		v.failLocked(err, "Failed to update password")
		return err
	}

	v.password = models.PasswordForm{}
	v.notice = &Notice{Level: NoticeSuccess, Text: "Password updated successfully"}
	return nil
}

func (v *ProfileSettingsView) submitProfile(ctx context.Context, tab ProfileTab) error {
	v.mu.Lock()
	if !v.loaded {
		v.notice = &Notice{Level: NoticeError, Text: profileNotLoadedMessage}
		v.mu.Unlock()
		metrics.ProfileUpdates.WithLabelValues(string(tab), "rejected").Inc()
		return ErrProfileNotLoaded
	}
	profile := v.profile
	v.saving = true
	v.errMsg = ""
	v.mu.Unlock()

	updated, err := v.api.UpdateProfile(ctx, profile)
	metrics.ProfileUpdates.WithLabelValues(string(tab), metrics.StatusLabel(err)).Inc()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.saving = false

	if err != nil {
		logger.Warn("Profile update failed", zap.String("tab", string(tab)), zap.Error(err))
		v.failLocked(err, "Failed to update profile")
		return err
	}

	v.profile = updated.Normalize()
	v.notice = &Notice{Level: NoticeSuccess, Text: "Profile updated successfully"}
	return nil
}

// failLocked surfaces a failure both inline and as a blocking notice
func (v *ProfileSettingsView) failLocked(err error, fallback string) {
	v.errMsg = errorMessage(err, fallback)
	v.notice = &Notice{Level: NoticeError, Text: v.errMsg}
}

// RejectInput reports a form that failed validation before reaching the view
func (v *ProfileSettingsView) RejectInput(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errMsg = message
	v.notice = &Notice{Level: NoticeError, Text: message}
}

// TakeNotice returns the pending notice once and clears it
func (v *ProfileSettingsView) TakeNotice() *Notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := v.notice
	v.notice = nil
	return n
}

// PasswordFields returns the credential sub-form as currently held
func (v *ProfileSettingsView) PasswordFields() models.PasswordForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.password
}

func (v *ProfileSettingsView) Snapshot() ProfileSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	profile := v.profile
	profile.Expertise = append([]string{}, v.profile.Expertise...)
	profile.Interests = append([]string{}, v.profile.Interests...)

	return ProfileSnapshot{
		Tab:     v.tab,
		Tabs:    ProfileTabs,
		Loading: v.loading,
		Saving:  v.saving,
		Error:   v.errMsg,
		Profile: profile,
	}
}
