package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/repository/memory"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/slack-go/slack"
)

type postedMessage struct {
	channelID string
	text      string
	blocks    []slack.Block
}

// fakeSlack records posted messages and signals each post on a channel
type fakeSlack struct {
	mu     sync.Mutex
	posted []postedMessage
	ch     chan struct{}
}

func newFakeSlack() *fakeSlack {
	return &fakeSlack{ch: make(chan struct{}, 16)}
}

func (f *fakeSlack) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	f.mu.Lock()
	f.posted = append(f.posted, postedMessage{channelID: channelID, text: text, blocks: blocks})
	f.mu.Unlock()
	f.ch <- struct{}{}
	return "1700000000.000100", nil
}

func (f *fakeSlack) messages() []postedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]postedMessage{}, f.posted...)
}

// fixedClock returns a clock that advances one minute on every call
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := current
		current = current.Add(time.Minute)
		return now
	}
}

func setup(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	opts = append([]usecase.Option{usecase.WithClock(fixedClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)))}, opts...)
	return usecase.New(repo, opts...), repo
}

func mustCreateSystem(t *testing.T, uc *usecase.UseCases, name string) *model.AISystem {
	t.Helper()
	s, err := uc.System.Create(context.Background(), usecase.SystemInput{Name: name, Owner: "alice", Department: "HR"})
	gt.NoError(t, err).Required()
	return s
}
