package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaard/pkg/session/service"
)

type fakeSession struct {
	state   service.State
	logouts int
}

func (f *fakeSession) Init(context.Context) error { return nil }
func (f *fakeSession) Login(_ context.Context, name string) error {
	f.state = service.State{LoggedIn: true, Username: name}
	return nil
}
func (f *fakeSession) SignIn(ctx context.Context, u, _ string) error { return f.Login(ctx, u) }
func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	f.state = service.State{}
	return nil
}
func (f *fakeSession) State() service.State { return f.state }

type countingPage struct {
	name     string
	events   *[]string
	mounted  int
	released int
}

func (p *countingPage) Activate(context.Context) func() {
	p.mounted++
	*p.events = append(*p.events, "activate "+p.name)
	return func() {
		p.released++
		*p.events = append(*p.events, "release "+p.name)
	}
}

func setup() (*Shell, *fakeSession, map[PageName]*countingPage, *[]string) {
	events := &[]string{}
	pages := map[PageName]*countingPage{}
	generic := map[PageName]Page{}
	for _, n := range []PageName{Dashboard, Crops, Equipment, Production, Vehicles} {
		p := &countingPage{name: string(n), events: events}
		pages[n] = p
		generic[n] = p
	}
	sess := &fakeSession{state: service.State{LoggedIn: true, Username: "admin"}}
	return New(sess, generic, nil), sess, pages, events
}

func TestParse_FallsBackToDashboard(t *testing.T) {
	assert.Equal(t, Vehicles, Parse("vehicles"))
	assert.Equal(t, Dashboard, Parse("reports"))
	assert.Equal(t, Dashboard, Parse(""))
}

func TestNavigate_ReleasesBeforeActivating(t *testing.T) {
	sh, _, _, events := setup()
	ctx := context.Background()

	require.NoError(t, sh.Navigate(ctx, Crops))
	require.NoError(t, sh.Navigate(ctx, Vehicles))

	assert.Equal(t, []string{"activate crops", "release crops", "activate vehicles"}, *events)
	assert.Equal(t, Vehicles, sh.Active())
}

func TestEnsure_OnlyMountsOnce(t *testing.T) {
	sh, _, pages, _ := setup()
	ctx := context.Background()

	require.NoError(t, sh.Ensure(ctx, Crops))
	require.NoError(t, sh.Ensure(ctx, Crops))
	assert.Equal(t, 1, pages[Crops].mounted)

	require.NoError(t, sh.Navigate(ctx, Crops))
	assert.Equal(t, 2, pages[Crops].mounted)
	assert.Equal(t, 1, pages[Crops].released)
}

func TestNavigate_RequiresLogin(t *testing.T) {
	sh, sess, pages, _ := setup()
	sess.state = service.State{}

	assert.ErrorIs(t, sh.Navigate(context.Background(), Crops), ErrNotAuthenticated)
	assert.ErrorIs(t, sh.Ensure(context.Background(), Crops), ErrNotAuthenticated)
	assert.Zero(t, pages[Crops].mounted)
}

func TestLogout_ReleasesAndResetsToDashboard(t *testing.T) {
	sh, sess, pages, _ := setup()
	ctx := context.Background()
	require.NoError(t, sh.Navigate(ctx, Vehicles))

	require.NoError(t, sh.Logout(ctx))

	assert.Equal(t, 1, pages[Vehicles].released)
	assert.Equal(t, Dashboard, sh.Active())
	assert.Equal(t, 1, sess.logouts)
	assert.False(t, sess.State().LoggedIn)
}

func TestClose_ReleasesActivePage(t *testing.T) {
	sh, _, pages, _ := setup()
	require.NoError(t, sh.Navigate(context.Background(), Equipment))

	sh.Close()
	sh.Close()
	assert.Equal(t, 1, pages[Equipment].released)
}
