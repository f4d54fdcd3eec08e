package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/tea-network/sbtmarket/cache"
	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/types"
	"github.com/tea-network/sbtmarket/util"
)

const (
	DefaultAPIBase = "https://api.github.com"
	DefaultRawBase = "https://raw.githubusercontent.com"

	templateSuffix = ".json"
	listCacheKey   = "templates"
)

// MetadataFetcher resolves a metadata location to its decoded document.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, uri string) (types.Metadata, error)
}

// contentEntry is one item of the GitHub repository contents listing.
type contentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Service lists metadata templates kept in a GitHub repository directory
// and builds token type URIs from them.
type Service struct {
	cfg     *config.TemplateConfig
	fetcher MetadataFetcher
	logger  *slog.Logger
	client  *fiber.Client
	timeout time.Duration
	apiBase string
	rawBase string
	cache   *cache.TTLCache[string, []types.Template]
}

type Option func(*Service)

// WithBaseURLs points the listing and raw file hosts somewhere else.
func WithBaseURLs(apiBase, rawBase string) Option {
	return func(s *Service) {
		s.apiBase = strings.TrimRight(apiBase, "/")
		s.rawBase = strings.TrimRight(rawBase, "/")
	}
}

func New(cfg *config.TemplateConfig, fetcher MetadataFetcher, timeout time.Duration, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger.With("component", "templates"),
		client:  &fiber.Client{},
		timeout: timeout,
		apiBase: DefaultAPIBase,
		rawBase: DefaultRawBase,
		cache:   cache.NewTTL[string, []types.Template](1, cfg.CacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the .json files of the template directory in listing order.
func (s *Service) List(ctx context.Context) ([]types.Template, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached, nil
	}

	headers := map[string]string{"Accept": "application/vnd.github+json"}
	if s.cfg.GithubToken != "" {
		headers["Authorization"] = "Bearer " + s.cfg.GithubToken
	}
	params := map[string]string{"ref": s.cfg.Branch}

	body, err := util.Get(ctx, s.client, s.timeout, s.apiBase, s.contentsPath(), params, headers)
	if err != nil {
		s.logger.Warn("failed to list templates", slog.Any("error", err))
		return nil, err
	}

	var entries []contentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		// a path that names a file yields an object instead of a listing
		return nil, types.NewBadRequestError(fmt.Sprintf("template path %q is not a directory", s.cfg.Path))
	}

	list := lo.FilterMap(entries, func(e contentEntry, _ int) (types.Template, bool) {
		if !strings.HasSuffix(e.Name, templateSuffix) || (e.Type != "" && e.Type != "file") {
			return types.Template{}, false
		}
		return types.Template{
			File:        e.Name,
			DisplayName: DisplayName(e.Name),
			Uri:         s.BuildURI(e.Name),
		}, true
	})

	s.cache.Set(listCacheKey, list)
	return list, nil
}

// Invalidate drops the cached listing so the next List reads the repository.
func (s *Service) Invalidate() {
	s.cache.Remove(listCacheKey)
}

// Preview fetches the metadata a type created from file would point at.
func (s *Service) Preview(ctx context.Context, file string) (types.Metadata, error) {
	if strings.TrimSpace(file) == "" {
		return types.Metadata{}, types.NewPreconditionError("preview", "template file is required")
	}
	return s.fetcher.FetchMetadata(ctx, s.BuildURI(file))
}

// BuildURI returns the raw file location of a template.
func (s *Service) BuildURI(file string) string {
	parts := []string{s.rawBase, s.cfg.Repo, s.cfg.Branch}
	if p := strings.Trim(s.cfg.Path, "/"); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(append(parts, url.PathEscape(file)), "/")
}

func (s *Service) contentsPath() string {
	path := "/repos/" + s.cfg.Repo + "/contents"
	if p := strings.Trim(s.cfg.Path, "/"); p != "" {
		path += "/" + p
	}
	return path
}

// DisplayName turns "green_bond-2024.json" into "Green Bond 2024".
func DisplayName(file string) string {
	name := strings.TrimSuffix(file, templateSuffix)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	out := []rune(name)
	for i, r := range out {
		if i == 0 || !isWordRune(out[i-1]) {
			out[i] = unicode.ToUpper(r)
		}
	}
	return string(out)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
