package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	accounthandlers "github.com/example/artist-platform/internal/accounts/handlers"
	accountstore "github.com/example/artist-platform/internal/accounts/store"
	"github.com/example/artist-platform/internal/accounts/tokens"
	artisthandlers "github.com/example/artist-platform/internal/artists/handlers"
	artiststore "github.com/example/artist-platform/internal/artists/store"
	commenthandlers "github.com/example/artist-platform/internal/comments/handlers"
	commentstore "github.com/example/artist-platform/internal/comments/store"
	notifhandlers "github.com/example/artist-platform/internal/notifications/handlers"
	notifstore "github.com/example/artist-platform/internal/notifications/store"
	notifworker "github.com/example/artist-platform/internal/notifications/worker"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/platform/config"
	"github.com/example/artist-platform/internal/platform/db"
	"github.com/example/artist-platform/internal/platform/events"
	"github.com/example/artist-platform/internal/platform/httpserver"
	"github.com/example/artist-platform/internal/platform/logging"
	"github.com/example/artist-platform/internal/platform/natsconn"
	"github.com/example/artist-platform/internal/platform/run"
	portfoliohandlers "github.com/example/artist-platform/internal/portfolio/handlers"
	portfoliostore "github.com/example/artist-platform/internal/portfolio/store"
	showcasehandlers "github.com/example/artist-platform/internal/showcases/handlers"
	showcasestore "github.com/example/artist-platform/internal/showcases/store"
	socialhandlers "github.com/example/artist-platform/internal/social/handlers"
	socialstore "github.com/example/artist-platform/internal/social/store"
)

type stores struct {
	users         accountstore.UserStore
	artists       artiststore.ArtistStore
	items         portfoliostore.ItemStore
	comments      commentstore.CommentStore
	social        socialstore.SocialStore
	notifications notifstore.NotificationStore
	showcases     showcasestore.ShowcaseStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	pool := openPool(cfg, log)
	if pool != nil {
		defer pool.Close()
	}
	st := buildStores(pool)

	verifier := auth.JWTVerifier{Secret: []byte(cfg.JWTSecret)}
	tokenSvc := tokens.Service{Secret: []byte(cfg.JWTSecret), AccessTokenTTL: 24 * time.Hour}

	// NATS is optional: without it events are dropped and no notifications
	// are produced.
	var pub *events.Publisher
	nc, err := natsconn.Connect(natsconn.Options{URL: cfg.NATSURL})
	if err != nil {
		log.Warn("nats unavailable, events disabled", zap.Error(err))
	} else {
		js, err := nc.JetStream()
		if err != nil {
			log.Warn("jetstream unavailable, events disabled", zap.Error(err))
		} else {
			pub = events.New(js, log)
		}
	}

	commentLimiter := httpserver.NewRateLimiter(cfg.CommentRate.Rate, cfg.CommentRate.Burst)

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{ReadyFunc: func() error {
		if pool != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		}
		return nil
	}})

	// public
	r.Post("/v1/auth/register", accounthandlers.Register(st.users))
	r.Post("/v1/auth/login", accounthandlers.Login(st.users, tokenSvc))
	r.Get("/v1/artists", artisthandlers.ListArtists(st.artists))
	r.Get("/v1/artists/{slug}/portfolio", portfoliohandlers.ListItems(st.items, st.artists))
	r.Get("/v1/artists/{slug}/showcases", showcasehandlers.ListByArtist(st.showcases, st.artists))
	r.Get("/v1/artists/{artist_id}/followers", socialhandlers.FollowerCount(st.social))
	r.Get("/v1/comments", commenthandlers.ListComments(st.comments))
	r.Get("/v1/portfolio/{item_id}/likes", socialhandlers.LikeCount(st.social))
	r.Get("/v1/showcases", showcasehandlers.ListUpcoming(st.showcases))

	// authenticated
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))

		r.Post("/v1/artists", artisthandlers.CreateProfile(st.artists))
		r.Get("/v1/artists/me", artisthandlers.GetMyProfile(st.artists))
		r.Put("/v1/artists/me", artisthandlers.UpdateMyProfile(st.artists))
		r.Post("/v1/artists/me/submit", artisthandlers.SubmitForReview(st.artists))

		r.Post("/v1/portfolio", portfoliohandlers.CreateItem(st.items, st.artists))
		r.Put("/v1/portfolio/{item_id}", portfoliohandlers.UpdateItem(st.items, st.artists))
		r.Delete("/v1/portfolio/{item_id}", portfoliohandlers.DeleteItem(st.items, st.artists))

		r.With(commentLimiter.Middleware).
			Post("/v1/comments", commenthandlers.CreateComment(st.comments, st.artists, st.items, pub))
		r.Put("/v1/comments/{comment_id}", commenthandlers.EditComment(st.comments, st.artists))
		r.Delete("/v1/comments/{comment_id}", commenthandlers.DeleteComment(st.comments, st.artists, st.items))

		r.Put("/v1/artists/{artist_id}/follow", socialhandlers.FollowArtist(st.social, st.artists, pub))
		r.Delete("/v1/artists/{artist_id}/follow", socialhandlers.UnfollowArtist(st.social))
		r.Get("/v1/me/following", socialhandlers.Following(st.social))
		r.Put("/v1/portfolio/{item_id}/like", socialhandlers.LikeItem(st.social, st.items, st.artists, pub))
		r.Delete("/v1/portfolio/{item_id}/like", socialhandlers.UnlikeItem(st.social))

		r.Get("/v1/me/notifications", notifhandlers.ListNotifications(st.notifications))
		r.Post("/v1/me/notifications/read", notifhandlers.MarkNotificationsRead(st.notifications))

		r.Post("/v1/showcases", showcasehandlers.CreateShowcase(st.showcases, st.artists))
		r.Put("/v1/showcases/{showcase_id}", showcasehandlers.UpdateShowcase(st.showcases, st.artists))
		r.Delete("/v1/showcases/{showcase_id}", showcasehandlers.DeleteShowcase(st.showcases, st.artists))
	})

	// admin console
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Use(auth.RequireAdmin)

		r.Get("/v1/admin/artists", artisthandlers.AdminListArtists(st.artists))
		r.Put("/v1/admin/artists/{artist_id}/status", artisthandlers.AdminSetStatus(st.artists))
		r.Delete("/v1/admin/comments/{comment_id}", commenthandlers.AdminDeleteComment(st.comments))
	})

	// /v1/artists/me above wins over this wildcard: chi matches static
	// segments before parameters
	r.Get("/v1/artists/{slug}", artisthandlers.GetArtist(st.artists))

	srv := httpserver.New(httpserver.Options{
		Addr:        cfg.HTTP.Addr,
		ServiceName: cfg.ServiceName,
		Logger:      log,
		Router:      r,
	})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		if nc != nil {
			notifworker.StartConsumer(ctx, nc, st.notifications, log)
			defer nc.Close()
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// openPool connects to Postgres. In production the database is mandatory;
// elsewhere a missing or unreachable database falls back to in-memory
// stores so the server stays usable for local development.
func openPool(cfg config.AppConfig, log *zap.Logger) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		if cfg.IsProduction() {
			log.Error("DATABASE_URL is required in production")
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("DATABASE_URL not set, using in-memory stores (development only)")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		if cfg.IsProduction() {
			log.Error("postgres is required in production but unavailable", zap.Error(err))
			_ = log.Sync()
			run.Exit(1)
		}
		log.Warn("postgres unavailable, falling back to in-memory stores", zap.Error(err))
		return nil
	}
	log.Info("stores: postgres")
	return pool
}

func buildStores(pool *pgxpool.Pool) stores {
	if pool != nil {
		return stores{
			users:         accountstore.NewPostgresUserStore(pool),
			artists:       artiststore.NewPostgresArtistStore(pool),
			items:         portfoliostore.NewPostgresItemStore(pool),
			comments:      commentstore.NewPostgresCommentStore(pool),
			social:        socialstore.NewPostgresSocialStore(pool),
			notifications: notifstore.NewPostgresNotificationStore(pool),
			showcases:     showcasestore.NewPostgresShowcaseStore(pool),
		}
	}

	artists := artiststore.NewInMemoryArtistStore()
	comments := commentstore.NewInMemoryCommentStore(artistAuthors{artists})
	return stores{
		users:   accountstore.NewInMemoryUserStore(),
		artists: artists,
		// deleting an item purges its comments, like the FK cascade does
		// on the Postgres path
		items:         portfoliostore.NewInMemoryItemStore(comments),
		comments:      comments,
		social:        socialstore.NewInMemorySocialStore(),
		notifications: notifstore.NewInMemoryNotificationStore(),
		showcases:     showcasestore.NewInMemoryShowcaseStore(artistStatuses{artists}),
	}
}

// artistAuthors lets the in-memory comment store resolve author fields from
// the artist store, mirroring the SQL join the Postgres store does.
type artistAuthors struct {
	artists *artiststore.InMemoryArtistStore
}

func (a artistAuthors) AuthorByArtistID(ctx context.Context, artistID string) (commentstore.Author, bool) {
	art, err := a.artists.FindByID(ctx, artistID)
	if err != nil {
		return commentstore.Author{}, false
	}
	return commentstore.Author{
		ArtistID:     art.ID,
		DisplayName:  art.DisplayName,
		Slug:         art.Slug,
		ProfilePhoto: art.ProfilePhoto,
	}, true
}

type artistStatuses struct {
	artists *artiststore.InMemoryArtistStore
}

func (a artistStatuses) IsApproved(ctx context.Context, artistID string) bool {
	art, err := a.artists.FindByID(ctx, artistID)
	return err == nil && art.Status == artiststore.StatusApproved
}
