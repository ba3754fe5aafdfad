package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/domain/profile"
)

// ExecuteFeed publishes the portfolio as a feed: one item per certificate
// (dated by its issue date) and one per project, newest first.
func (uc *PortfolioUseCase) ExecuteFeed(ctx context.Context, sessionID uuid.UUID) (*feeds.Feed, error) {
	ctx, span := uc.tracer.Start(ctx, "portfolio.feed")
	defer span.End()

	p, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	feed := BuildFeed(p, uc.baseURL, time.Now())
	uc.logger.Info("Portfolio feed generated",
		zap.String("session_id", sessionID.String()), zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

// BuildFeed is the pure projection behind ExecuteFeed. Projects carry no date
// of their own and are stamped with now.
func BuildFeed(p *profile.Profile, baseURL string, now time.Time) *feeds.Feed {
	view := BuildView(p)
	portfolioURL := strings.TrimRight(baseURL, "/") + "/portfolio"

	feed := &feeds.Feed{
		Title:       view.Name + " - Portfolio",
		Link:        &feeds.Link{Href: portfolioURL},
		Description: view.CareerGoal,
		Author:      &feeds.Author{Name: view.Name, Email: p.BasicInfo.Email},
		Created:     now,
	}

	items := make([]*feeds.Item, 0, len(p.Certificates)+len(p.Projects))
	for i, c := range p.Certificates {
		items = append(items, &feeds.Item{
			Id:          fmt.Sprintf("%s#certificate-%d", portfolioURL, i),
			Title:       "Certificate: " + c.Name,
			Link:        &feeds.Link{Href: portfolioURL},
			Description: "Issued by " + c.Issuer,
			Created:     c.Date.Time(),
		})
	}
	for i, pr := range p.Projects {
		link := pr.URL
		if !pr.HasURL() {
			link = portfolioURL
		}
		items = append(items, &feeds.Item{
			Id:          fmt.Sprintf("%s#project-%d", portfolioURL, i),
			Title:       "Project: " + pr.Name,
			Link:        &feeds.Link{Href: link},
			Description: fmt.Sprintf("%s (%s)", pr.Desc, pr.Tech),
			Created:     now,
		})
	}

	feed.Items = items
	feed.Sort(func(a, b *feeds.Item) bool { return a.Created.After(b.Created) })
	return feed
}
