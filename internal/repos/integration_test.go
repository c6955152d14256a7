package repos

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"filmorate-server/internal/migrate"
	"filmorate-server/internal/model"
	pkgdb "filmorate-server/pkg/db"
)

// newTestRepo connects to the database named by DATABASE_URL, applies
// migrations and wipes the mutable tables so each test starts clean.
// Skipped when no database is configured.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	if err := migrate.Up(url); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	pool, err := pkgdb.Connect(context.Background(), url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	_, err = pool.Exec(context.Background(),
		`TRUNCATE feed_events, review_likes, reviews, friendships, likes,
		 film_directors, film_genres, films, directors, users
		 RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return New(pool)
}

func mustUser(t *testing.T, r *Repository, login string) model.User {
	t.Helper()
	u, err := r.Users.Create(context.Background(), model.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: model.NewDate(1990, time.January, 1),
	})
	if err != nil {
		t.Fatalf("create user %s: %v", login, err)
	}
	return u
}

func mustFilm(t *testing.T, r *Repository, name string) model.Film {
	t.Helper()
	f, err := r.Films.Create(context.Background(), model.Film{
		Name:        name,
		ReleaseDate: model.NewDate(2000, time.March, 1),
		Duration:    100,
		Mpa:         model.MpaRating{ID: 1},
	})
	if err != nil {
		t.Fatalf("create film %s: %v", name, err)
	}
	return f
}

func TestDuplicateLikeLeavesFeedUntouched(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := mustUser(t, r, "alice")
	f := mustFilm(t, r, "First Film")

	if err := r.AddLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("add like: %v", err)
	}
	if err := r.AddLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("duplicate add like: %v", err)
	}
	feed, err := r.GetUserFeed(ctx, u.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("expected one feed event after duplicate add, got %d", len(feed))
	}
	e := feed[0]
	if e.EventType != model.EventLike || e.Operation != model.OpAdd || e.EntityID != f.ID {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestRemovingAbsentLikeEmitsNoEvent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := mustUser(t, r, "alice")
	f := mustFilm(t, r, "First Film")

	if err := r.RemoveLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("remove absent like: %v", err)
	}
	feed, err := r.GetUserFeed(ctx, u.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("expected empty feed, got %d events", len(feed))
	}
}

func TestFeedReturnsEventsInInsertionOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u := mustUser(t, r, "alice")
	v := mustUser(t, r, "bob")
	f1 := mustFilm(t, r, "First Film")
	f2 := mustFilm(t, r, "Second Film")

	if err := r.AddLike(ctx, f1.ID, u.ID); err != nil {
		t.Fatalf("add like: %v", err)
	}
	if err := r.AddFriend(ctx, u.ID, v.ID); err != nil {
		t.Fatalf("add friend: %v", err)
	}
	if err := r.AddLike(ctx, f2.ID, u.ID); err != nil {
		t.Fatalf("add like: %v", err)
	}
	if err := r.RemoveLike(ctx, f1.ID, u.ID); err != nil {
		t.Fatalf("remove like: %v", err)
	}

	feed, err := r.GetUserFeed(ctx, u.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	want := []struct {
		typ, op string
		entity  int64
	}{
		{model.EventLike, model.OpAdd, f1.ID},
		{model.EventFriend, model.OpAdd, v.ID},
		{model.EventLike, model.OpAdd, f2.ID},
		{model.EventLike, model.OpRemove, f1.ID},
	}
	if len(feed) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(feed))
	}
	for i, w := range want {
		e := feed[i]
		if e.EventType != w.typ || e.Operation != w.op || e.EntityID != w.entity {
			t.Fatalf("event %d: expected %s/%s on %d, got %+v", i, w.typ, w.op, w.entity, e)
		}
	}
	for i := 1; i < len(feed); i++ {
		prev, cur := feed[i-1], feed[i]
		if cur.Timestamp < prev.Timestamp ||
			(cur.Timestamp == prev.Timestamp && cur.EventID <= prev.EventID) {
			t.Fatalf("events %d and %d out of (timestamp, event id) order", i-1, i)
		}
	}
}

func TestPopularRespectsCountAndRanking(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u1 := mustUser(t, r, "alice")
	u2 := mustUser(t, r, "bob")
	u3 := mustUser(t, r, "carol")
	f1 := mustFilm(t, r, "One Like")
	f2 := mustFilm(t, r, "Three Likes")
	f3 := mustFilm(t, r, "Two Likes")
	f4 := mustFilm(t, r, "No Likes")

	for _, uid := range []int64{u1.ID, u2.ID, u3.ID} {
		if _, err := r.Likes.Add(ctx, f2.ID, uid); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	for _, uid := range []int64{u1.ID, u2.ID} {
		if _, err := r.Likes.Add(ctx, f3.ID, uid); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	if _, err := r.Likes.Add(ctx, f1.ID, u1.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	top, err := r.Films.Popular(ctx, 2, nil, nil)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(top) != 2 || top[0].ID != f2.ID || top[1].ID != f3.ID {
		t.Fatalf("expected [%d %d], got %+v", f2.ID, f3.ID, filmIDs(top))
	}

	all, err := r.Films.Popular(ctx, 10, nil, nil)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	wantAll := []int64{f2.ID, f3.ID, f1.ID, f4.ID}
	got := filmIDs(all)
	if len(got) != len(wantAll) {
		t.Fatalf("expected %v, got %v", wantAll, got)
	}
	for i := range wantAll {
		if got[i] != wantAll[i] {
			t.Fatalf("expected %v, got %v", wantAll, got)
		}
	}
}

func filmIDs(films []model.Film) []int64 {
	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	return ids
}

func TestCommonFilmsChecksBothUsers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u1 := mustUser(t, r, "alice")
	u2 := mustUser(t, r, "bob")
	shared := mustFilm(t, r, "Shared Film")
	solo := mustFilm(t, r, "Solo Film")

	for _, uid := range []int64{u1.ID, u2.ID} {
		if _, err := r.Likes.Add(ctx, shared.ID, uid); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	if _, err := r.Likes.Add(ctx, solo.ID, u1.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	films, err := r.Films.Common(ctx, u1.ID, u2.ID)
	if err != nil {
		t.Fatalf("common: %v", err)
	}
	if len(films) != 1 || films[0].ID != shared.ID {
		t.Fatalf("expected only the shared film, got %+v", filmIDs(films))
	}

	if _, err := r.Films.Common(ctx, u1.ID, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for missing user, got %v", err)
	}
}

func TestConcurrentFirstVotesSettleToOne(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	author := mustUser(t, r, "alice")
	voter := mustUser(t, r, "bob")
	f := mustFilm(t, r, "Reviewed Film")

	rev, err := r.Reviews.Create(ctx, model.Review{
		Content:    "fine",
		IsPositive: true,
		UserID:     author.ID,
		FilmID:     f.ID,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.Reviews.AddLike(ctx, rev.ReviewID, voter.ID)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("vote %d: %v", i, err)
		}
	}

	got, err := r.Reviews.GetByID(ctx, rev.ReviewID)
	if err != nil {
		t.Fatalf("get review: %v", err)
	}
	if got.Useful != 1 {
		t.Fatalf("expected useful 1 after concurrent identical votes, got %d", got.Useful)
	}
}
