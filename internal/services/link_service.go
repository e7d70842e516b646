// Package services contains the link lifecycle engine: shortening, resolution,
// activation and listing on top of the link repository.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/monitor"
	"github.com/axellelanca/shortlinks/internal/repository"
	"github.com/axellelanca/shortlinks/internal/shortcode"
	"github.com/axellelanca/shortlinks/internal/urlutil"
)

// LinkService orchestrates the link lifecycle. It holds no locks: every
// per-link consistency guarantee comes from the repository transactions.
// One instance is shared by all concurrent requests.
type LinkService struct {
	linkRepo repository.LinkRepository
	checker  monitor.Checker
	log      zerolog.Logger
}

// NewLinkService creates a LinkService over a shared repository handle.
func NewLinkService(linkRepo repository.LinkRepository, checker monitor.Checker, log zerolog.Logger) *LinkService {
	return &LinkService{
		linkRepo: linkRepo,
		checker:  checker,
		log:      log.With().Str("component", "link_service").Logger(),
	}
}

// Shorten returns the link for rawURL, creating it when the URL is new.
// Shortening an existing active URL returns the stored record unchanged;
// an existing inactive one fails with ErrURLRestricted.
func (s *LinkService) Shorten(ctx context.Context, rawURL string) (*models.Link, error) {
	fullURL, err := urlutil.Normalize(rawURL)
	if err != nil {
		return nil, err
	}

	fullURL, err = s.reachableURL(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	existing, err := s.linkRepo.FindByFullURL(ctx, fullURL)
	switch {
	case err == nil:
		return s.existingLink(existing)
	case !errors.Is(err, customerrors.ErrURLNotFound):
		return nil, s.fail("shorten", fullURL, err)
	}

	link, err := s.create(ctx, fullURL)
	if errors.Is(err, repository.ErrDuplicateURL) {
		// A concurrent request created it between our lookup and insert.
		existing, err = s.linkRepo.FindByFullURL(ctx, fullURL)
		if err != nil {
			return nil, s.fail("shorten", fullURL, err)
		}
		return s.existingLink(existing)
	}
	if err != nil {
		return nil, s.fail("shorten", fullURL, err)
	}

	s.log.Info().Str("full_url", link.FullURL).Str("short_url", link.ShortURL).Msg("link created")
	return link, nil
}

// reachableURL probes fullURL under its own scheme, then under the other one,
// and returns the first variant that answered.
func (s *LinkService) reachableURL(ctx context.Context, fullURL string) (string, error) {
	if s.checker.IsReachable(ctx, fullURL) {
		return fullURL, nil
	}

	alternate := urlutil.ChangeProtocol(fullURL, urlutil.Alternate(urlutil.Scheme(fullURL)))
	if s.checker.IsReachable(ctx, alternate) {
		return alternate, nil
	}

	s.log.Debug().Str("url", fullURL).Msg("url unreachable under both schemes")
	return "", customerrors.ErrURLMustBeAccessible
}

func (s *LinkService) existingLink(link *models.Link) (*models.Link, error) {
	if !link.IsActive {
		s.log.Warn().Str("short_url", link.ShortURL).Msg("shorten refused: link is deactivated")
		return nil, customerrors.ErrURLRestricted
	}
	return link, nil
}

// create inserts the row and patches the short code derived from its id in one
// transaction, so no other request ever sees a link without short code.
func (s *LinkService) create(ctx context.Context, fullURL string) (*models.Link, error) {
	var link *models.Link
	err := s.linkRepo.WithinTx(ctx, func(tx repository.LinkRepository) error {
		id, err := tx.Insert(ctx, fullURL)
		if err != nil {
			return err
		}

		code, err := shortcode.Encode(uint64(id))
		if err != nil {
			return err
		}

		if err := tx.PatchShortURL(ctx, id, code); err != nil {
			return err
		}

		link, err = tx.FindByShortURL(ctx, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Resolve returns the link behind shortURL and counts the request.
// The returned record carries the incremented counter.
func (s *LinkService) Resolve(ctx context.Context, shortURL string) (*models.Link, error) {
	if !shortcode.Valid(shortURL) {
		return nil, customerrors.ErrURLNotFound
	}

	var link *models.Link
	err := s.linkRepo.WithinTx(ctx, func(tx repository.LinkRepository) error {
		found, err := tx.FindByShortURL(ctx, shortURL)
		if err != nil {
			return err
		}
		if !found.IsActive {
			return customerrors.ErrURLRestricted
		}

		link, err = tx.IncrementCounter(ctx, found.ID)
		return err
	})
	if err != nil {
		return nil, s.fail("resolve", shortURL, err)
	}

	s.log.Debug().Str("short_url", shortURL).Uint64("count_requests", link.CountRequests).Msg("link resolved")
	return link, nil
}

// Activate re-enables resolution of shortURL. Activating an active link succeeds.
func (s *LinkService) Activate(ctx context.Context, shortURL string) (*models.Link, error) {
	return s.setActive(ctx, shortURL, true)
}

// Deactivate blocks resolution and re-shortening of shortURL.
func (s *LinkService) Deactivate(ctx context.Context, shortURL string) (*models.Link, error) {
	return s.setActive(ctx, shortURL, false)
}

func (s *LinkService) setActive(ctx context.Context, shortURL string, active bool) (*models.Link, error) {
	if !shortcode.Valid(shortURL) {
		return nil, customerrors.ErrURLNotFound
	}

	var link *models.Link
	err := s.linkRepo.WithinTx(ctx, func(tx repository.LinkRepository) error {
		found, err := tx.FindByShortURL(ctx, shortURL)
		if err != nil {
			return err
		}
		link, err = tx.SetActive(ctx, found.ID, active)
		return err
	})
	if err != nil {
		return nil, s.fail("set active", shortURL, err)
	}

	s.log.Info().Str("short_url", shortURL).Bool("is_active", active).Msg("link state changed")
	return link, nil
}

// ListLinks returns every link, or only those whose is_active equals
// *isActive when the filter is given.
func (s *LinkService) ListLinks(ctx context.Context, isActive *bool) ([]models.Link, error) {
	links, err := s.linkRepo.List(ctx, isActive)
	if err != nil {
		return nil, s.fail("list", "", err)
	}
	return links, nil
}

// GetLink looks shortURL up without counting a request or checking its state.
func (s *LinkService) GetLink(ctx context.Context, shortURL string) (*models.Link, error) {
	if !shortcode.Valid(shortURL) {
		return nil, customerrors.ErrURLNotFound
	}
	link, err := s.linkRepo.FindByShortURL(ctx, shortURL)
	if err != nil {
		return nil, s.fail("get", shortURL, err)
	}
	return link, nil
}

// fail passes user-facing kinds through, logs store failures for operators,
// and folds anything else into ErrUnexpected.
func (s *LinkService) fail(op, subject string, err error) error {
	switch {
	case customerrors.IsUserError(err):
		if errors.Is(err, customerrors.ErrURLRestricted) {
			s.log.Warn().Str("op", op).Str("subject", subject).Msg("access to deactivated link")
		}
		return err
	case errors.Is(err, customerrors.ErrStoreUnavailable):
		s.log.Error().Err(err).Str("op", op).Str("subject", subject).Msg("store failure")
		return err
	default:
		s.log.Error().Err(err).Str("op", op).Str("subject", subject).Msg("unexpected failure")
		return fmt.Errorf("%w: %s: %w", customerrors.ErrUnexpected, op, err)
	}
}
