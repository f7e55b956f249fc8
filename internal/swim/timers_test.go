package swim

import "testing"

func TestTimerQueueOrder(t *testing.T) {
	var q timerQueue
	q.schedule(300, 1, timerSpawn)
	q.schedule(100, 1, timerShieldExpiry)
	q.schedule(100, 2, timerSpawn)

	if _, ok := q.popDue(99); ok {
		t.Fatal("nothing should be due at 99")
	}

	first, _ := q.popDue(100)
	second, _ := q.popDue(100)
	if first.kind != timerShieldExpiry || second.gen != 2 {
		t.Errorf("equal deadlines should fire in insertion order, got %+v then %+v", first, second)
	}
	if _, ok := q.popDue(200); ok {
		t.Error("timer at 300 fired early")
	}
	if q.pending(1, timerSpawn) != 1 {
		t.Errorf("pending = %d, expected 1", q.pending(1, timerSpawn))
	}

	q.clear()
	if q.len() != 0 {
		t.Errorf("len after clear = %d", q.len())
	}
}
