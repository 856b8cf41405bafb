package announce

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yogalign/yogalign/pkg/poseapi"
	"github.com/yogalign/yogalign/pkg/speech"
)

func TestAnnounceDedupesRepeats(t *testing.T) {
	mock := speech.NewMock()
	d := NewDispatcher(mock)
	defer d.Close()

	signals := []string{
		SignalCorrect, SignalCorrect, SignalWrong, SignalWrong, SignalCorrect,
	}
	counts := []int{1, 1, 2, 2, 3}
	for i, signal := range signals {
		d.Announce(signal)
		// Let the utterance land before the next signal so counts
		// stay deterministic.
		want := counts[i]
		waitFor(t, func() bool { return mock.CallCount("Say") == want })
	}

	want := []string{"Correct pose", "Adjust your pose", "Correct pose"}
	var texts []string
	for _, c := range mock.Calls() {
		if c.Method == "Say" {
			texts = append(texts, c.Text)
		}
	}
	if len(texts) != len(want) {
		t.Fatalf("spoken texts = %v, want %v", texts, want)
	}
	for i, w := range want {
		if texts[i] != w {
			t.Fatalf("spoken texts = %v, want %v", texts, want)
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestAnnounceSwallowsFailure(t *testing.T) {
	mock := speech.WithError(errors.New("no audio device"))
	d := NewDispatcher(mock)
	defer d.Close()

	d.Announce(SignalWrong)
	waitFor(t, func() bool { return mock.CallCount("Say") == 1 })

	// A different signal still goes through after a failure.
	d.Announce(SignalCorrect)
	waitFor(t, func() bool { return mock.CallCount("Say") == 2 })
}

func TestAnnounceCancelsInProgress(t *testing.T) {
	started := make(chan struct{}, 4)
	cancelled := make(chan struct{}, 4)
	mock := &speech.Mock{
		SayFunc: func(ctx context.Context, text string) error {
			started <- struct{}{}
			select {
			case <-ctx.Done():
				cancelled <- struct{}{}
				return ctx.Err()
			case <-time.After(2 * time.Second):
				return nil
			}
		},
	}
	d := NewDispatcher(mock)
	defer d.Close()

	d.Announce(SignalCorrect)
	<-started

	d.Announce(SignalWrong)
	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("first utterance was not cancelled by the second signal")
	}
}

func TestResetAllowsRepeat(t *testing.T) {
	mock := speech.NewMock()
	d := NewDispatcher(mock)
	defer d.Close()

	d.Announce(SignalCorrect)
	waitFor(t, func() bool { return mock.CallCount("Say") == 1 })

	d.Reset()
	d.Announce(SignalCorrect)
	waitFor(t, func() bool { return mock.CallCount("Say") == 2 })
}

func TestAnnounceAdjustment(t *testing.T) {
	mock := speech.NewMock()
	d := NewDispatcher(mock)
	defer d.Close()

	adj := poseapi.Adjustment{JointName: "left_knee", Adjustment: "Extend"}
	d.AnnounceAdjustment(adj)
	d.AnnounceAdjustment(adj)
	waitFor(t, func() bool { return mock.CallCount("Say") == 1 })

	calls := mock.Calls()
	if calls[0].Text != "Extend your left_knee" {
		t.Errorf("spoken text = %q, want %q", calls[0].Text, "Extend your left_knee")
	}

	// A different joint is not deduped against the first.
	d.AnnounceAdjustment(poseapi.Adjustment{JointName: "right_elbow", Adjustment: "Bend"})
	waitFor(t, func() bool { return mock.CallCount("Say") == 2 })
}

func TestCloseStopsAnnouncing(t *testing.T) {
	mock := speech.NewMock()
	d := NewDispatcher(mock)
	d.Close()

	d.Announce(SignalCorrect)
	time.Sleep(20 * time.Millisecond)
	if got := mock.CallCount("Say"); got != 0 {
		t.Errorf("Say count after Close = %d, want 0", got)
	}
}
