package application

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/i18n"
	"github.com/Maxito7/wedding_card/internal/scheduler"
)

type stubRepo struct {
	images []domain.GalleryImage
	err    error
}

func (r stubRepo) GetAll() ([]domain.GalleryImage, error) { return r.images, r.err }

type idleTicker struct{ ch chan time.Time }

func (t idleTicker) C() <-chan time.Time { return t.ch }
func (t idleTicker) Stop()               {}

func idleTickers(time.Duration) scheduler.Ticker { return idleTicker{ch: make(chan time.Time)} }

func images(n int) []domain.GalleryImage {
	out := make([]domain.GalleryImage, n)
	for i := range out {
		id := fmt.Sprintf("%d.jpg", i+1)
		out[i] = domain.GalleryImage{ID: id, URL: "/images/" + id}
	}
	return out
}

func newGalleryService(t *testing.T, n int) *GalleryService {
	t.Helper()
	svc, err := NewGalleryService(stubRepo{images: images(n)}, time.Second, idleTickers)
	require.NoError(t, err)
	return svc
}

func TestNewGalleryServiceErrors(t *testing.T) {
	_, err := NewGalleryService(stubRepo{}, time.Second, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyImageSet)

	_, err = NewGalleryService(stubRepo{err: errors.New("db down")}, time.Second, nil)
	assert.ErrorContains(t, err, "db down")
}

func TestGalleryServiceMountAndView(t *testing.T) {
	svc := newGalleryService(t, 13)

	ctrl, err := svc.Mount()
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.Advance(domain.Prev))
	v := svc.View(ctrl, nil)
	assert.Equal(t, "13 / 13", v.Counter)
	assert.Equal(t, "13.jpg", v.Current.ID)
	assert.True(t, v.UserInteracting)
	assert.False(t, v.Autoplay)
	assert.Equal(t, int64(1000), v.IntervalMs)
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore(newGalleryService(t, 3), time.Minute, 0)
	defer store.Close()

	now := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	sess, created, err := store.GetOrCreate("")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, store.Size())

	same, created, err := store.GetOrCreate(sess.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, sess, same)

	_, ok := store.Get("not-a-uuid")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.cleanup())
	assert.Equal(t, 0, store.Size())
	assert.True(t, sess.Gallery.Closed())

	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
}

func TestSessionStoreGetExpires(t *testing.T) {
	store := NewSessionStore(newGalleryService(t, 3), time.Minute, 0)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }
	sess, err := store.Create()
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, ok := store.Get(sess.ID)
	assert.True(t, ok)

	now = now.Add(61 * time.Second)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
	assert.True(t, sess.Gallery.Closed())
}

func TestSessionStoreCloseUnmountsAll(t *testing.T) {
	store := NewSessionStore(newGalleryService(t, 2), time.Minute, 0)

	a, err := store.Create()
	require.NoError(t, err)
	b, err := store.Create()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	store.Close()
	store.Close()
	assert.True(t, a.Gallery.Closed())
	assert.True(t, b.Gallery.Closed())
	assert.Equal(t, 0, store.Size())
}

func TestSessionStoreEvictsLeastRecentlySeen(t *testing.T) {
	store := NewSessionStore(newGalleryService(t, 3), time.Minute, 3)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	var created []*Session
	for i := 0; i < 3; i++ {
		sess, err := store.Create()
		require.NoError(t, err)
		created = append(created, sess)
		now = now.Add(time.Second)
	}

	// la primera vuelve a usarse, así que la menos reciente es la segunda
	_, ok := store.Get(created[0].ID)
	require.True(t, ok)

	for i := 0; i < 5; i++ {
		_, err := store.Create()
		require.NoError(t, err)
		assert.LessOrEqual(t, store.Size(), 3)
	}
	assert.Equal(t, 3, store.Size())
	assert.True(t, created[1].Gallery.Closed())
	assert.True(t, created[2].Gallery.Closed())
}

func TestSessionStoreEvictionSparesOpenStreams(t *testing.T) {
	store := NewSessionStore(newGalleryService(t, 3), time.Minute, 2)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	watched, err := store.Create()
	require.NoError(t, err)
	_, cancel := watched.Gallery.Subscribe()
	defer cancel()
	now = now.Add(time.Second)

	idle, err := store.Create()
	require.NoError(t, err)

	_, err = store.Create()
	require.NoError(t, err)

	assert.False(t, watched.Gallery.Closed())
	assert.True(t, idle.Gallery.Closed())
}

func TestSessionStoreKeepsStreamingSessionPastTTL(t *testing.T) {
	store := NewSessionStore(newGalleryService(t, 3), time.Minute, 0)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	sess, err := store.Create()
	require.NoError(t, err)
	require.NoError(t, sess.Gallery.SelectIndex(2))

	updates, cancel := sess.Gallery.Subscribe()
	<-updates

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 0, store.cleanup())
	assert.False(t, sess.Gallery.Closed())

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 2, got.Gallery.Snapshot().State.CurrentIndex)

	// al cerrarse el stream la sesión se renueva y luego expira normalmente
	now = now.Add(10 * time.Minute)
	cancel()
	sess.Touch()

	now = now.Add(30 * time.Second)
	assert.Equal(t, 0, store.cleanup())

	now = now.Add(time.Minute)
	assert.Equal(t, 1, store.cleanup())
	assert.True(t, sess.Gallery.Closed())
}

func TestValidator(t *testing.T) {
	v := &Validator{}

	req := domain.RSVPRequest{Name: "  Lan  ", Phone: "0123-456-789"}
	require.NoError(t, v.ValidateRSVP(&req))
	assert.Equal(t, "Lan", req.Name)
	assert.Equal(t, "1", req.Guests)

	bad := []domain.RSVPRequest{
		{Name: " "},
		{Name: strings.Repeat("a", 121)},
		{Name: "Lan", Phone: "12ab"},
		{Name: "Lan", Guests: "7"},
		{Name: "Lan", Message: strings.Repeat("x", 1001)},
	}
	for i, r := range bad {
		assert.ErrorIs(t, v.ValidateRSVP(&r), domain.ErrInvalidRSVP, "case %d", i)
	}

	assert.NoError(t, v.ValidatePhone(""))
	assert.NoError(t, v.ValidatePhone("+84 (912) 345.678"))
	assert.NoError(t, v.ValidateGuests("5+"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 2)
	defer rl.Stop()

	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.NoError(t, rl.Allow("1.2.3.4"))
	assert.NoError(t, rl.Allow("1.2.3.4"))
	assert.ErrorIs(t, rl.Allow("1.2.3.4"), domain.ErrRateLimited)
	assert.Equal(t, 0, rl.GetRemaining("1.2.3.4"))
	assert.Equal(t, 2, rl.GetRemaining("5.6.7.8"))

	now = now.Add(2 * time.Minute)
	assert.NoError(t, rl.Allow("1.2.3.4"))

	now = now.Add(2 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.limits)
}

type recordingNotifier struct {
	mu    sync.Mutex
	to    string
	rsvp  domain.RSVPRequest
	calls int
	err   error
}

func (n *recordingNotifier) SendRSVPNotificacion(to string, rsvp domain.RSVPRequest, subject string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.to, n.rsvp = to, rsvp
	n.calls++
	return n.err
}

func testInvitation() *domain.Invitation {
	return &domain.Invitation{Couple: "DUSÔ & HASIKIN", RSVPEmail: "wedding.yusohkin@gmail.com", Images: []string{"1.jpg"}}
}

func TestRSVPSubmitBuildsComposeLinks(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewRSVPService(testInvitation(), nil, notifier)

	res, err := svc.Submit("1.2.3.4", domain.RSVPRequest{Name: "Lan", Phone: "0912345678", Guests: "2", Message: "Chúc mừng & hạnh phúc"}, i18n.Printer(i18n.Vietnamese))
	require.NoError(t, err)

	assert.Equal(t, "Xác nhận tham dự lễ cưới DUSÔ & HASIKIN", res.Subject)
	assert.Contains(t, res.Body, "Họ tên: Lan\n")
	assert.Contains(t, res.Body, "Số người tham dự: 2\n")
	assert.True(t, res.Notified)
	assert.Equal(t, "wedding.yusohkin@gmail.com", notifier.to)
	assert.Equal(t, 1, notifier.calls)

	u, err := url.Parse(res.GmailURL)
	require.NoError(t, err)
	assert.Equal(t, "mail.google.com", u.Host)
	q := u.Query()
	assert.Equal(t, "cm", q.Get("view"))
	assert.Equal(t, "1", q.Get("fs"))
	assert.Equal(t, "wedding.yusohkin@gmail.com", q.Get("to"))
	assert.Equal(t, res.Subject, q.Get("su"))
	assert.Equal(t, res.Body, q.Get("body"))
	assert.NotContains(t, res.GmailURL, "+")

	assert.True(t, strings.HasPrefix(res.MailtoURL, "mailto:wedding.yusohkin%40gmail.com?subject="))
	m, err := url.Parse(res.MailtoURL)
	require.NoError(t, err)
	to, err := url.PathUnescape(m.Opaque)
	require.NoError(t, err)
	assert.Equal(t, "wedding.yusohkin@gmail.com", to)
	assert.Equal(t, res.Subject, m.Query().Get("subject"))
}

func TestRSVPSubmitEnglish(t *testing.T) {
	svc := NewRSVPService(testInvitation(), nil, nil)

	res, err := svc.Submit("", domain.RSVPRequest{Name: "Ann"}, i18n.Printer(i18n.English))
	require.NoError(t, err)
	assert.Equal(t, "Wedding attendance confirmation DUSÔ & HASIKIN", res.Subject)
	assert.Contains(t, res.Body, "Guests: 1\n")
	assert.False(t, res.Notified)
}

func TestRSVPSubmitNotifierFailureIsNotFatal(t *testing.T) {
	svc := NewRSVPService(testInvitation(), nil, &recordingNotifier{err: errors.New("smtp down")})

	res, err := svc.Submit("", domain.RSVPRequest{Name: "Lan"}, i18n.Printer(i18n.Vietnamese))
	require.NoError(t, err)
	assert.False(t, res.Notified)
}

func TestRSVPSubmitValidationAndRateLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1)
	defer rl.Stop()
	notifier := &recordingNotifier{}
	svc := NewRSVPService(testInvitation(), rl, notifier)
	p := i18n.Printer(i18n.Vietnamese)

	_, err := svc.Submit("a", domain.RSVPRequest{}, p)
	assert.ErrorIs(t, err, domain.ErrInvalidRSVP)

	_, err = svc.Submit("a", domain.RSVPRequest{Name: "Lan"}, p)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 0, notifier.calls)
}

func TestTelURL(t *testing.T) {
	assert.Equal(t, "tel:0123456789", TelURL("0123-456-789"))
	assert.Equal(t, "tel:+84912345678", TelURL("+84 912 345 678"))
}
