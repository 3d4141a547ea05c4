package analysis

import (
	"context"
	"net/mail"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
)

var (
	errNoEmail = errors.New("aucune adresse e-mail n'est associée à ce profil")

	reportSubject  = "Votre bilan d'orientation"
	reportTemplate = "analysis_report"
)

type (
	// ResultFetcher fetches all the test results of a user, newest first.
	ResultFetcher interface {
		QueryTestResultsByUser(ctx context.Context, userID string) ([]assessment.TestResult, error)
	}

	// ProfileFetcher fetches the profile of a user.
	ProfileFetcher interface {
		GetProfile(ctx context.Context, id string) (profile.Profile, error)
	}

	Service struct {
		results           ResultFetcher
		profiles          ProfileFetcher
		mailSvc           core.EmailService
		rnd               RandSource
		nowFunc           func() time.Time
		retakeAfterMonths int
	}

	Option func(svc *Service)
)

// WithRandSource replaces the source of the random filler values.
func WithRandSource(rnd RandSource) Option {
	return func(svc *Service) { svc.rnd = rnd }
}

// WithNowFunc replaces the clock used to find stale results.
func WithNowFunc(f func() time.Time) Option {
	return func(svc *Service) { svc.nowFunc = f }
}

func NewService(
	results ResultFetcher,
	profiles ProfileFetcher,
	mailSvc core.EmailService,
	retakeAfterMonths int,
	opts ...Option,
) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(results, "results"),
		vala.IsNotNil(profiles, "profiles"),
		vala.IsNotNil(mailSvc, "mailSvc"),
	).CheckAndPanic()

	svc := &Service{
		results:           results,
		profiles:          profiles,
		mailSvc:           mailSvc,
		rnd:               globalRand{},
		nowFunc:           time.Now,
		retakeAfterMonths: retakeAfterMonths,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Analyze fetches the test results then the profile of the user and derives their Report.
// Any fetch failure is returned as a *FetchError.
func (svc *Service) Analyze(ctx context.Context, userID string) (Report, error) {
	_, report, err := svc.analyze(ctx, userID)
	return report, err
}

func (svc *Service) analyze(ctx context.Context, userID string) (profile.Profile, Report, error) {
	results, err := svc.results.QueryTestResultsByUser(ctx, userID)
	if err != nil {
		return profile.Profile{}, Report{}, newFetchError(SourceTestResults, err)
	}
	p, err := svc.profiles.GetProfile(ctx, userID)
	if err != nil {
		return profile.Profile{}, Report{}, newFetchError(SourceProfile, err)
	}

	report := Analyze(results, Options{
		Now:               svc.nowFunc(),
		Rand:              svc.rnd,
		RetakeAfterMonths: svc.retakeAfterMonths,
	})
	return p, report, nil
}

type reportEmailData struct {
	Name   string
	Report Report
}

// SendReport analyzes the user's results and e-mails the Report to them.
func (svc *Service) SendReport(ctx context.Context, userID string) (Report, error) {
	p, report, err := svc.analyze(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	if p.Email == "" {
		return Report{}, core.NewValidationError(errNoEmail, core.FieldError{Field: "email", Error: errNoEmail.Error()})
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: p.DisplayName(), Address: p.Email}},
		Subject:      reportSubject,
		TemplateName: reportTemplate,
		TemplateData: reportEmailData{Name: p.DisplayName(), Report: report},
	})
	return report, nil
}
