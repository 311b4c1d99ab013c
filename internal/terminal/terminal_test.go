package terminal

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/floof-os/floofterm/internal/audit"
	"github.com/floof-os/floofterm/internal/commands"
	"github.com/floof-os/floofterm/internal/feed"
	"github.com/floof-os/floofterm/internal/session"
	"github.com/floof-os/floofterm/internal/vfs"
)

const homePrompt = "user@server:/home/user$"

func newTerminal(t *testing.T, opts ...Option) (*Terminal, *Buffer, *feed.ManualScheduler) {
	t.Helper()
	buf := NewBuffer()
	sched := feed.NewManualScheduler()
	opts = append([]Option{WithScheduler(sched)}, opts...)
	term, err := New(buf, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { term.Close() })
	return term, buf, sched
}

func TestSubmit_EchoesPromptAndOutput(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("pwd")

	assert.Equal(t, []string{homePrompt + " pwd", "/home/user"}, buf.Lines())
}

func TestSubmit_EmptyLineOnlyEchoes(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("   ")

	assert.Equal(t, []string{homePrompt + " "}, buf.Lines())
	assert.Empty(t, term.History())
}

func TestSubmit_TrimsInput(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("  whoami \t")

	assert.Equal(t, []string{homePrompt + " whoami", "user"}, buf.Lines())
	assert.Equal(t, []string{"whoami"}, term.History())
}

func TestSubmit_UnknownCommand(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("vim")

	assert.Equal(t, []string{homePrompt + " vim", commands.NotFound}, buf.Lines())
}

func TestSubmit_PromptFollowsCd(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("cd /var/log")
	assert.Equal(t, "user@server:/var/log$", term.Prompt())

	term.Submit("ls")
	lines := buf.Lines()
	assert.Equal(t, "user@server:/var/log$ ls", lines[len(lines)-2])
	assert.Equal(t, "syslog", lines[len(lines)-1])
}

func TestSubmit_IPSetOrdering(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("ip addr set 10.0.0.5")

	assert.Equal(t, []string{
		homePrompt + " ip addr set 10.0.0.5",
		"eth0: link down",
		"eth0: link up",
		commands.IPUpdated,
	}, buf.Lines())

	conf, err := term.Filesystem().ReadFile(vfs.NetworkConfigPath)
	require.NoError(t, err)
	assert.Contains(t, conf, "IPADDR=10.0.0.5")
	assert.Equal(t, "10.0.0.5", term.Session().Net.IP)
}

func TestNew_WritesNetworkConfig(t *testing.T) {
	term, _, _ := newTerminal(t, WithNetwork(session.Network{
		IP: "10.9.9.9", Netmask: "255.0.0.0", Gateway: "10.0.0.1",
	}))

	conf, err := term.Filesystem().ReadFile(vfs.NetworkConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "DEVICE=eth0\nIPADDR=10.9.9.9\nNETMASK=255.0.0.0\nGATEWAY=10.0.0.1", conf)
}

func TestNew_RejectsUnknownCwd(t *testing.T) {
	_, err := New(NewBuffer(), WithCwd("/nowhere"))
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestTail_SingleFeed(t *testing.T) {
	term, buf, sched := newTerminal(t)

	term.Submit("tail -f /var/log/syslog")
	require.True(t, term.Following())
	assert.Equal(t, feed.Banner, buf.Lines()[1])

	sched.Tick()
	term.Submit("tail -f /var/log/syslog")
	assert.Equal(t, 1, sched.Live())

	lines := buf.Lines()
	assert.Equal(t, commands.AlreadyFollowing, lines[len(lines)-1])

	sched.Tick()
	lines = buf.Lines()
	assert.Equal(t, feed.Messages[1], lines[len(lines)-1])
}

func TestInterrupt_StopsFeed(t *testing.T) {
	term, buf, sched := newTerminal(t)

	term.Submit("tail -f /var/log/syslog")
	sched.Tick()
	sched.Tick()

	require.True(t, term.Interrupt())
	lines := buf.Lines()
	assert.Equal(t, InterruptMark, lines[len(lines)-1])
	assert.Equal(t, 0, sched.Live())

	count := len(lines)
	sched.Tick()
	assert.False(t, term.Interrupt())
	assert.Len(t, buf.Lines(), count)
	assert.False(t, term.Following())
}

func TestInterrupt_IdleIsNoop(t *testing.T) {
	term, buf, _ := newTerminal(t)

	assert.False(t, term.Interrupt())
	assert.Empty(t, buf.Lines())
}

func TestApply_CancelFeedMarksInterrupt(t *testing.T) {
	term, buf, sched := newTerminal(t)

	require.True(t, term.apply(commands.EffectStartFeed))
	require.True(t, term.Following())

	assert.True(t, term.apply(commands.EffectCancelFeed))
	assert.Equal(t, []string{feed.Banner, InterruptMark}, buf.Lines())
	assert.Equal(t, 0, sched.Live())

	assert.False(t, term.apply(commands.EffectCancelFeed))
	assert.False(t, term.apply(commands.EffectNone))
	assert.Len(t, buf.Lines(), 2)
}

func TestClear(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("pwd")
	term.Submit("clear")

	assert.Empty(t, buf.Lines())
	assert.Equal(t, []string{"pwd", "clear"}, term.History())
}

func TestLogout_ResetsEverything(t *testing.T) {
	reloads := 0
	term, buf, sched := newTerminal(t, WithReloadHook(func() { reloads++ }))

	first := term.Session().ID
	term.Submit("cd /etc")
	term.Submit("ip addr set 10.0.0.5")
	term.Submit("tail -f /var/log/syslog")
	term.Submit("logout")

	assert.Equal(t, 1, reloads)
	assert.Empty(t, buf.Lines())
	assert.Empty(t, term.History())
	assert.False(t, term.Following())
	assert.Equal(t, 0, sched.Live())

	s := term.Session()
	assert.NotEqual(t, first, s.ID)
	assert.Equal(t, session.DefaultCwd, s.Cwd)
	assert.Equal(t, session.DefaultIP, s.Net.IP)
	assert.Equal(t, homePrompt, term.Prompt())

	conf, err := term.Filesystem().ReadFile(vfs.NetworkConfigPath)
	require.NoError(t, err)
	assert.Contains(t, conf, "IPADDR="+session.DefaultIP)
}

func TestHistoryRecall(t *testing.T) {
	term, _, _ := newTerminal(t)

	term.Submit("pwd")
	term.Submit("")
	term.Submit("date")

	line, ok := term.HistoryBack()
	require.True(t, ok)
	assert.Equal(t, "date", line)
	line, _ = term.HistoryBack()
	assert.Equal(t, "pwd", line)
	line, _ = term.HistoryBack()
	assert.Equal(t, "pwd", line)

	assert.Equal(t, "date", term.HistoryForward())
	assert.Equal(t, "", term.HistoryForward())
}

func TestHistoryCommand(t *testing.T) {
	term, buf, _ := newTerminal(t)

	term.Submit("pwd")
	term.Submit("history")

	lines := buf.Lines()
	assert.Equal(t, "    1  pwd\n    2  history", lines[len(lines)-1])
}

func TestDate_UsesClock(t *testing.T) {
	now := time.Date(2026, time.October, 19, 14, 3, 7, 0, time.UTC)
	term, buf, _ := newTerminal(t, WithClock(func() time.Time { return now }))

	term.Submit("date")

	assert.Equal(t, "Mon Oct 19 14:03:07 UTC 2026", buf.Lines()[1])
}

func TestPromptDecorator(t *testing.T) {
	term, buf, _ := newTerminal(t, WithPromptDecorator(func(p string) string { return "[" + p + "]" }))

	term.Submit("pwd")

	assert.Equal(t, "["+homePrompt+"]", term.Prompt())
	assert.Equal(t, "["+homePrompt+"] pwd", buf.Lines()[0])
}

func TestCompletions(t *testing.T) {
	term, _, _ := newTerminal(t)

	assert.Equal(t, []string{"cat", "cd", "clear"}, term.Completions("c"))
	assert.Equal(t, []string{"test.txt"}, term.Completions("cat t"))

	term.Submit("cd /")
	assert.Equal(t, []string{"home", "var", "etc"}, term.Completions("ls "))
	assert.Empty(t, term.Completions("zz"))
}

func TestAuditTrail(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	term, _, _ := newTerminal(t, WithLogger(audit.NewWithCore(core)))

	term.Submit("ip addr set 10.0.0.7")
	term.Submit("tail -f /var/log/syslog")
	term.Interrupt()

	assert.Equal(t, 1, logs.FilterMessage("session started").Len())
	assert.Equal(t, 2, logs.FilterMessage("command").Len())
	changed := logs.FilterMessage("network changed").All()
	require.Len(t, changed, 1)
	assert.Equal(t, "10.0.0.7", changed[0].ContextMap()["ip"])
	assert.Equal(t, 1, logs.FilterMessage("feed started").Len())
	assert.Equal(t, 1, logs.FilterMessage("feed interrupted").Len())
}

func TestRealTicker(t *testing.T) {
	buf := NewBuffer()
	term, err := New(buf, WithFeedInterval(5*time.Millisecond))
	require.NoError(t, err)
	defer term.Close()

	term.Submit("tail -f /var/log/syslog")
	require.Eventually(t, func() bool {
		return len(buf.Lines()) >= 5
	}, 2*time.Second, 5*time.Millisecond)

	term.Interrupt()
	n := len(buf.Lines())
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, buf.Lines(), n)
	assert.Equal(t, InterruptMark, buf.Lines()[n-1])
}

func TestBuffer_TailAndChanged(t *testing.T) {
	buf := NewBuffer()
	buf.Println("a")
	buf.Println("b\nc")

	select {
	case <-buf.Changed():
	default:
		t.Fatal("expected change notification")
	}

	assert.Equal(t, []string{"b", "c"}, buf.Tail(2))
	assert.Equal(t, []string{"a", "b", "c"}, buf.Tail(10))
	assert.Equal(t, "a\nb\nc", buf.String())

	buf.Clear()
	assert.Empty(t, buf.Lines())
}

func TestWriterOutput(t *testing.T) {
	var out bytes.Buffer
	w := NewWriterOutput(&out)

	w.Println("hello")
	w.Clear()

	assert.Equal(t, "hello\n"+clearScreen, out.String())
}
