package backoff_test

import (
	"github.com/LOKESH-999/axiom-spinlock/pkg/backoff"
	"testing"
)

func TestBackOff_New(t *testing.T) {
	b := backoff.New()
	if b.Current() != backoff.DefaultSpin {
		t.Fatal("start value mismatch:", b.Current())
	}
}

func TestBackOff_NewWith(t *testing.T) {
	b := backoff.NewWith(128)
	if b.Current() != 128 {
		t.Fatal("start value mismatch:", b.Current())
	}
	if low := backoff.NewWith(0); low.Current() != backoff.MinSpin {
		t.Fatal("start value not clamped to floor:", low.Current())
	}
	if high := backoff.NewWith(backoff.MaxSpin * 2); high.Current() != backoff.MaxSpin {
		t.Fatal("start value not clamped to ceiling:", high.Current())
	}
}

func TestBackOff_Wait(t *testing.T) {
	b := backoff.New()

	prev := b.Current()
	for i := 0; i < 23; i++ {
		b.Wait()
		curr := b.Current()
		want := prev << 1
		if want > backoff.MaxSpin {
			want = backoff.MaxSpin
		}
		if curr != want {
			t.Fatal("growth mismatch:", curr, "!=", want)
		}
		prev = curr
	}

	b.Wait()
	if b.Current() != backoff.MaxSpin {
		t.Fatal("counter exceeded ceiling:", b.Current())
	}
}

func TestBackOff_Relax(t *testing.T) {
	b := backoff.New()
	for i := 0; i < 5; i++ {
		b.Wait()
	}

	before := b.Current()
	b.Relax()
	if after := b.Current(); after >= before {
		t.Fatal("relax did not reduce spin:", after)
	}

	for i := 0; i < 32; i++ {
		b.Relax()
	}
	if b.Current() != backoff.MinSpin {
		t.Fatal("relax drove counter below floor:", b.Current())
	}
}

func TestBackOff_Reset(t *testing.T) {
	b := backoff.New()
	for i := 0; i < 5; i++ {
		b.Wait()
	}
	if b.Current() <= backoff.DefaultSpin {
		t.Fatal("counter did not grow:", b.Current())
	}

	b.Reset()
	if b.Current() != backoff.DefaultSpin {
		t.Fatal("reset did not restore default:", b.Current())
	}
}

func TestBackOff_ResetTo(t *testing.T) {
	b := backoff.New()
	b.ResetTo(512)
	if b.Current() != 512 {
		t.Fatal("reset-to mismatch:", b.Current())
	}
	b.ResetTo(1)
	if b.Current() != backoff.MinSpin {
		t.Fatal("reset-to not clamped to floor:", b.Current())
	}
	b.ResetTo(backoff.MaxSpin + 1)
	if b.Current() != backoff.MaxSpin {
		t.Fatal("reset-to not clamped to ceiling:", b.Current())
	}
}

func BenchmarkBackOff_Wait(b *testing.B) {
	b.ReportAllocs()
	bo := backoff.NewWith(backoff.MinSpin)
	for i := 0; i < b.N; i++ {
		bo.Wait()
		bo.ResetTo(backoff.MinSpin)
	}
}
