package api

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karei-dev/padmux/internal/config"
	"github.com/karei-dev/padmux/internal/consts"
	"github.com/karei-dev/padmux/internal/device"
	"github.com/karei-dev/padmux/internal/types"
)

// テスト用の仮想デバイス。書き込まれたイベントを順に記録する
type fakeGamePad struct {
	mutex    sync.Mutex
	written  []types.Event
	closed   int
	writeErr error
}

func (g *fakeGamePad) WriteEvent(ev types.Event) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.writeErr != nil {
		return g.writeErr
	}
	g.written = append(g.written, ev)
	return nil
}

func (g *fakeGamePad) Close() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.closed++
	return nil
}

func (g *fakeGamePad) events() []types.Event {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return append([]types.Event(nil), g.written...)
}

func (g *fakeGamePad) closeCount() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.closed
}

// プロセスを落とす代わりに呼び出しを記録する
type fatalRecorder struct {
	mutex sync.Mutex
	calls []string
}

func (r *fatalRecorder) record(format string, v ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, v...))
}

func (r *fatalRecorder) count() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.calls)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	// デバイスノードの無い空ディレクトリを監視させる
	cfg.Device.InputDir = t.TempDir()
	cfg.Watcher.RescanInterval = 10 * time.Millisecond
	return cfg
}

func newTestService(t *testing.T, pad *fakeGamePad) (*PadService, *fatalRecorder) {
	t.Helper()

	rec := &fatalRecorder{}
	s := NewPadService(testConfig(t))
	s.createPad = func(string) (device.GamePad, error) { return pad, nil }
	s.fatalf = rec.record
	return s, rec
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("書き込みループが停止しませんでした")
	}
}

func TestDrainInjectsInArrivalOrder(t *testing.T) {
	pad := &fakeGamePad{}
	s, rec := newTestService(t, pad)

	out := make(chan types.Event, 8)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		s.drain(pad, stop, out)
		close(done)
	}()

	want := []types.Event{
		{Type: consts.Key, Code: consts.BtnSouth, Value: 1},
		{Type: consts.Abs, Code: consts.AbsHat0X, Value: -1},
		{Type: consts.Key, Code: consts.BtnSouth, Value: 0},
	}
	for _, ev := range want {
		out <- ev
	}

	require.Eventually(t, func() bool {
		return len(pad.events()) == len(want)
	}, time.Second, time.Millisecond)

	close(stop)
	waitDone(t, done)

	assert.Equal(t, want, pad.events())
	assert.Equal(t, 1, pad.closeCount())
	assert.Zero(t, rec.count())
}

func TestDrainStopWithPendingEvent(t *testing.T) {
	// 未処理イベントがチャネルに残ったまま停止されても、
	// パニックせずにループが終了しデバイスが閉じられること
	for i := 0; i < 100; i++ {
		pad := &fakeGamePad{}
		s, rec := newTestService(t, pad)

		out := make(chan types.Event, 1)
		stop := make(chan struct{})
		done := make(chan struct{})
		go func() {
			s.drain(pad, stop, out)
			close(done)
		}()

		out <- types.Event{Type: consts.Key, Code: consts.BtnSouth, Value: 1}
		close(stop)

		waitDone(t, done)
		assert.Zero(t, rec.count())
		assert.Equal(t, 1, pad.closeCount())
	}
}

func TestDrainFatalOnWriteFailure(t *testing.T) {
	// 出力先を失ったら致命的エラーとして報告してループを抜ける
	pad := &fakeGamePad{writeErr: errors.New("device gone")}
	s, rec := newTestService(t, pad)

	out := make(chan types.Event, 1)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		s.drain(pad, stop, out)
		close(done)
	}()

	out <- types.Event{Type: consts.Key, Code: consts.BtnSouth, Value: 1}

	waitDone(t, done)
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, 1, pad.closeCount())
}

func TestServiceStartStop(t *testing.T) {
	pad := &fakeGamePad{}
	s, rec := newTestService(t, pad)

	require.NoError(t, s.Start())
	assert.True(t, s.Running())

	// 二重起動はエラー
	assert.Error(t, s.Start())

	s.Stop()
	assert.False(t, s.Running())

	// 停止は冪等
	s.Stop()

	require.Eventually(t, func() bool {
		return pad.closeCount() == 1
	}, time.Second, time.Millisecond)
	assert.Zero(t, rec.count())
	assert.Zero(t, s.SessionCount())
	assert.Empty(t, s.Sessions())
}

func TestServiceStartFailsWithoutVirtualPad(t *testing.T) {
	s := NewPadService(testConfig(t))
	s.createPad = func(string) (device.GamePad, error) {
		return nil, errors.New("uinput unavailable")
	}

	err := s.Start()
	require.Error(t, err)
	assert.False(t, s.Running())
}
