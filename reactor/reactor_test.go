package reactor

import (
	"os"
	"sync"
	"testing"
	"time"
	"unsafe"
)

func boxInt(v int) unsafe.Pointer {
	x := v
	return unsafe.Pointer(&x)
}

// Each test claims its own pair of thread IDs: sleepFlags, wakeFDs, and the
// mailbox fabric are process-wide state (§5, §9), so reusing IDs across
// tests would leak undrained messages from one test's cells into the next.
var nextThreadPair = struct {
	sync.Mutex
	n int
}{}

func allocThreadPair(t *testing.T) (int, int) {
	t.Helper()
	nextThreadPair.Lock()
	defer nextThreadPair.Unlock()
	a, b := nextThreadPair.n, nextThreadPair.n+1
	nextThreadPair.n += 2
	if b >= MaxThreads {
		t.Fatalf("exhausted MaxThreads slots for tests")
	}
	return a, b
}

func newPair(t *testing.T, onA, onB OnMessageFunc) (Reactor, Reactor) {
	t.Helper()
	idA, idB := allocThreadPair(t)
	const nrThreads = MaxThreads
	a, err := MakeReactor("auto", idA, nrThreads, onA)
	if err != nil {
		t.Fatalf("construct a: %v", err)
	}
	b, err := MakeReactor("auto", idB, nrThreads, onB)
	if err != nil {
		t.Fatalf("construct b: %v", err)
	}
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return a, b
}

func TestSendMsgToSelfIsInvalidArgument(t *testing.T) {
	a, _ := newPair(t, func(unsafe.Pointer) {}, func(unsafe.Pointer) {})
	_, err := a.SendMsg(a.ThreadID(), boxInt(1))
	if err == nil {
		t.Fatal("expected error sending to self")
	}
	rerr, ok := err.(*Error)
	if !ok || rerr.Kind != KindInvalidArgument {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}

// S3: fabric fill — SendMsg must report (false, nil), never an error, once
// the target cell saturates.
func TestSendMsgReportsFabricFullWithoutError(t *testing.T) {
	a, b := newPair(t, func(unsafe.Pointer) {}, func(unsafe.Pointer) {})

	sent := 0
	for {
		ok, err := a.SendMsg(b.ThreadID(), boxInt(sent))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		sent++
		if sent > 100000 {
			t.Fatal("fabric never reported full")
		}
	}
	if sent == 0 {
		t.Fatal("expected at least one message to be accepted before full")
	}
}

// S4: a worker parked in Run() must be woken and deliver a message sent
// after it announced sleep intent.
func TestRunWakesAndDeliversMessage(t *testing.T) {
	var mu sync.Mutex
	var received []int

	a, b := newPair(t, func(unsafe.Pointer) {}, func(msg unsafe.Pointer) {
		mu.Lock()
		received = append(received, *(*int)(msg))
		mu.Unlock()
	})

	stopB := make(chan struct{})
	done := make(chan struct{})
	go func() {
		b.Run(stopB)
		close(done)
	}()

	// Give b a chance to park in its blocking wait.
	time.Sleep(50 * time.Millisecond)

	ok, err := a.SendMsg(b.ThreadID(), boxInt(42))
	if err != nil || !ok {
		t.Fatalf("SendMsg failed: ok=%v err=%v", ok, err)
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(received)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("message never delivered to sleeping worker")
		case <-time.After(5 * time.Millisecond):
		}
	}

	close(stopB)
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 || received[0] != 42 {
		t.Fatalf("unexpected payload: %v", received)
	}
}

// Exercises the §5 double-check: HasMessages must observe a message sent
// concurrently with the sleep-flag announcement, without relying on the
// wake interrupt actually firing in time.
func TestHasMessagesDoubleCheckClosesLostWakeupWindow(t *testing.T) {
	a, b := newPair(t, func(unsafe.Pointer) {}, func(unsafe.Pointer) {})

	sleepFlags[b.ThreadID()].Store(true)
	ok, err := a.SendMsg(b.ThreadID(), boxInt(7))
	if err != nil || !ok {
		t.Fatalf("SendMsg failed: ok=%v err=%v", ok, err)
	}

	if !b.HasMessages() {
		t.Fatal("double-check must observe the message sent while sleep-flag was set")
	}
	sleepFlags[b.ThreadID()].Store(false)
}

func TestRegisterIsIdempotent(t *testing.T) {
	a, _ := newPair(t, func(unsafe.Pointer) {}, func(unsafe.Pointer) {})

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	h := &fakeHandle{fd: r.Fd()}
	if err := a.Register(h); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := a.Register(h); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if err := a.Deregister(h); err != nil {
		t.Fatalf("deregister: %v", err)
	}
}

type fakeHandle struct{ fd uintptr }

func (f *fakeHandle) Fd() uintptr  { return f.fd }
func (f *fakeHandle) OnReadEvent() {}
