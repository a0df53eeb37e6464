package app

import (
	"context"
	"strings"
	"time"

	"sukuyo/domain/core"
	"sukuyo/domain/mansion"
	"sukuyo/domain/tenmon"
	"sukuyo/internal/birthdate"
	"sukuyo/internal/errors"
	"sukuyo/internal/render"
	"sukuyo/models"
	"sukuyo/ports"

	"go.uber.org/zap"
)

// DiagnoseInput is what a caller supplies for one diagnosis
type DiagnoseInput struct {
	Name      string
	Birthdate string
	Birthtime string
	Format    string
}

// DiagnosisService runs birthdate -> longitude -> mansion triple -> text
type DiagnosisService struct {
	ephemeris ports.Ephemeris
	catalog   ports.CatalogRepository
	renderer  *render.Renderer
	location  *time.Location
	logger    *zap.Logger
}

// NewDiagnosisService creates a new diagnosis service. Birth dates are read
// as wall-clock times in location.
func NewDiagnosisService(ephemeris ports.Ephemeris, catalog ports.CatalogRepository, renderer *render.Renderer, location *time.Location, logger *zap.Logger) *DiagnosisService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagnosisService{
		ephemeris: ephemeris,
		catalog:   catalog,
		renderer:  renderer,
		location:  location,
		logger:    logger,
	}
}

// EphemerisName reports the active longitude strategy
func (s *DiagnosisService) EphemerisName() string {
	return s.ephemeris.Name()
}

// Compute classifies a birth date without rendering any text
func (s *DiagnosisService) Compute(ctx context.Context, in DiagnoseInput) (*models.Diagnosis, error) {
	born, err := birthdate.ParseWithTime(in.Birthdate, in.Birthtime)
	if err != nil {
		return nil, err
	}

	at := born.At(s.location)
	triple := mansion.DeriveAt(s.ephemeris.Longitude(at), at)
	primary := triple.PrimaryMansion()

	d := &models.Diagnosis{
		ID:        core.NewDiagnosisID(),
		Name:      strings.TrimSpace(in.Name),
		Birthdate: born.String(),
		BornAt:    at,
		Ephemeris: s.ephemeris.Name(),
		Triple:    triple,
		Primary:   primary,
		Karma:     triple.KarmaMansion(),
		Origin:    triple.OriginMansion(),
		Kanagi:    tenmon.KanagiMode(triple.Primary),
		Kotodama:  tenmon.Kotodama(primary.Reading),
		Core:      tenmon.Core(triple),
	}

	detail, err := s.catalog.FindByName(ctx, primary.Name)
	switch {
	case err == nil:
		d.Detail = detail
	case errors.Is(err, errors.CodeNotFound):
		s.logger.Debug("no catalog record for mansion", zap.String("mansion", primary.Name))
	default:
		return nil, errors.Wrap(err, "failed to load shuku detail")
	}

	return d, nil
}

// Diagnose computes and renders the free diagnosis
func (s *DiagnosisService) Diagnose(ctx context.Context, in DiagnoseInput) (*models.Diagnosis, error) {
	format := strings.ToLower(strings.TrimSpace(in.Format))
	if format != "" && format != models.FormatText && format != models.FormatHTML {
		return nil, errors.InvalidInput("format must be text or html, got " + in.Format)
	}

	d, err := s.Compute(ctx, in)
	if err != nil {
		return nil, err
	}

	text, err := s.renderer.Diagnosis(d)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render diagnosis")
	}
	d.Text = text
	if format == models.FormatHTML {
		d.HTML = render.HTML(text)
	}

	s.logger.Info("diagnosis computed",
		zap.String("id", d.ID.String()),
		zap.String("birthdate", d.Birthdate),
		zap.String("primary", d.Primary.Name),
		zap.String("karma", d.Karma.Name),
		zap.String("origin", d.Origin.Name),
		zap.Float64("longitude", d.Triple.Longitude),
		zap.String("phase", d.Triple.Phase.String()),
	)
	return d, nil
}

// Preview renders the premium preview for a birth date
func (s *DiagnosisService) Preview(ctx context.Context, date string) (*models.Diagnosis, string, error) {
	d, err := s.Compute(ctx, DiagnoseInput{Birthdate: date})
	if err != nil {
		return nil, "", err
	}
	text, err := s.renderer.Preview(d)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to render preview")
	}
	return d, text, nil
}

// Shuku returns a catalog record by id (1-27)
func (s *DiagnosisService) Shuku(ctx context.Context, id int) (*models.ShukuDetail, error) {
	return s.catalog.Get(ctx, id)
}

// Mansions returns the 28-mansion cycle
func (s *DiagnosisService) Mansions() []mansion.Mansion {
	return mansion.All()
}
