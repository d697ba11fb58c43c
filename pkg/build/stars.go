package build

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/pkgdir/pkgdir/pkg/log"
)

// StarFetcher refreshes star counts for packages hosted on GitHub before
// the index is emitted. Packages without a recognizable GitHub homepage
// keep their workspace count.
type StarFetcher struct {
	client *github.Client
	logger *log.Logger
}

// NewStarFetcher creates a fetcher. With an empty token the unauthenticated
// client is used, which is enough for small workspaces but rate limited.
func NewStarFetcher(token string) *StarFetcher {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(context.Background(), ts)
		client = github.NewClient(tc)
	} else {
		client = github.NewClient(nil)
	}
	return &StarFetcher{
		client: client,
		logger: log.ForComponent("stars"),
	}
}

// EnrichWorkspace updates Stars for every live package with a GitHub
// homepage. Individual lookup failures are logged and skipped; a build
// never fails because one repository went away.
func (f *StarFetcher) EnrichWorkspace(ctx context.Context, ws *Workspace) {
	for id, pkg := range ws.Packages {
		if pkg.Removed {
			continue
		}
		owner, repo, ok := githubRepo(pkg.Homepage)
		if !ok {
			continue
		}
		repository, _, err := f.client.Repositories.Get(ctx, owner, repo)
		if err != nil {
			f.logger.Warnf("fetching stars for %s/%s: %v", owner, repo, err)
			continue
		}
		pkg.Stars = repository.GetStargazersCount()
		ws.Packages[id] = pkg
	}
}

// githubRepo extracts owner and repository from a github.com URL.
func githubRepo(homepage string) (owner, repo string, ok bool) {
	u, err := url.Parse(homepage)
	if err != nil || !strings.EqualFold(u.Host, "github.com") {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
