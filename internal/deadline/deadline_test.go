package deadline

import (
	"testing"
	"testing/synctest"
	"time"
)

func TestSet_PauseFiresOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var s Set
		s.SetPauseAfter(time.Minute, time.Now())

		if got := s.Poll(); got != None {
			t.Fatalf("Poll() before due = %v, want None", got)
		}

		time.Sleep(time.Minute)
		synctest.Wait()

		if got := s.Poll(); got != PauseAfter {
			t.Fatalf("Poll() after due = %v, want PauseAfter", got)
		}
		if got := s.Poll(); got != None {
			t.Errorf("second Poll() = %v, want None", got)
		}
		if s.Active() != None {
			t.Errorf("Active() = %v, want None after firing", s.Active())
		}
	})
}

func TestSet_MutuallyExclusive(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var s Set
		s.SetQuitAfter(time.Minute, time.Now())
		s.SetPauseAfter(2*time.Minute, time.Now())

		if s.Active() != PauseAfter {
			t.Fatalf("Active() = %v, want PauseAfter", s.Active())
		}

		time.Sleep(90 * time.Second)
		synctest.Wait()
		if got := s.Poll(); got != None {
			t.Fatalf("Poll() = %v, the replaced quit timer must not fire", got)
		}

		time.Sleep(time.Minute)
		synctest.Wait()
		if got := s.Poll(); got != PauseAfter {
			t.Errorf("Poll() = %v, want PauseAfter", got)
		}
	})
}

func TestSet_QuitReplacesPause(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var s Set
		s.SetPauseAfter(time.Minute, time.Now())
		s.SetQuitAfter(3*time.Minute, time.Now())

		time.Sleep(3 * time.Minute)
		synctest.Wait()
		if got := s.Poll(); got != QuitAfter {
			t.Errorf("Poll() = %v, want QuitAfter", got)
		}
	})
}

func TestSet_Cancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var s Set
		s.SetQuitAfter(time.Second, time.Now())
		s.Cancel()

		time.Sleep(2 * time.Second)
		synctest.Wait()
		if got := s.Poll(); got != None {
			t.Errorf("Poll() after Cancel = %v, want None", got)
		}
	})
}

func TestSet_Remaining(t *testing.T) {
	var s Set
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if k, d := s.Remaining(now); k != None || d != 0 {
		t.Errorf("Remaining() on empty set = %v %v", k, d)
	}

	s.SetPauseAfter(10*time.Minute, now)
	defer s.Cancel()

	k, d := s.Remaining(now.Add(4 * time.Minute))
	if k != PauseAfter || d != 6*time.Minute {
		t.Errorf("Remaining() = %v %v, want PauseAfter 6m", k, d)
	}

	_, d = s.Remaining(now.Add(time.Hour))
	if d != 0 {
		t.Errorf("Remaining() past due = %v, want 0", d)
	}
}
